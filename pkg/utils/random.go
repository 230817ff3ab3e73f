package utils

import "math/rand"

// ChooseUnique 从 [0, rangeSize) 中不放回地随机抽取 pickCount 个互不相同的下标
//
// pickCount 超过 rangeSize 时截断为 rangeSize；任一参数 <= 0 时返回空切片。
// 每抽一次就从候选列表中移除该项，保证同样大小的组合出现概率相同。
//
// 参数:
//   - rng: 随机数源（测试时传入固定种子）
//   - pickCount: 需要的数量
//   - rangeSize: 候选范围大小
//
// 返回:
//   - []int: 抽中的下标，顺序无意义
func ChooseUnique(rng *rand.Rand, pickCount, rangeSize int) []int {
	if pickCount <= 0 || rangeSize <= 0 {
		return []int{}
	}
	if pickCount > rangeSize {
		pickCount = rangeSize
	}

	choices := make([]int, rangeSize)
	for i := range choices {
		choices[i] = i
	}

	picked := make([]int, 0, pickCount)
	for i := 0; i < pickCount; i++ {
		// 与末尾交换后截断，等价于 RemoveAt 但是 O(1)
		j := rng.Intn(len(choices))
		picked = append(picked, choices[j])
		last := len(choices) - 1
		choices[j] = choices[last]
		choices = choices[:last]
	}

	return picked
}

// RangeInt 返回 [low, high) 内的均匀随机整数；区间为空时返回 low
func RangeInt(rng *rand.Rand, low, high int) int {
	if high <= low {
		return low
	}
	return low + rng.Intn(high-low)
}
