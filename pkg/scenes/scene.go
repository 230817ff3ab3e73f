package scenes

import (
	"github.com/decker502/fruitpop/pkg/game"
)

// Scene is a type alias for game.Scene.
// All scene implementations should implement the game.Scene interface.
type Scene = game.Scene

// 场景ID，用于 SceneManager.LoadScene
const (
	SceneMenu = "menu"
	ScenePlay = "play"
)
