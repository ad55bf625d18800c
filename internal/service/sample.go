package service

import (
	"math/rand/v2"
)

// SampleQuestions 不放回地随机抽取 count 个元素，顺序随机。
// count 超过总数时返回打乱后的全部元素，不修改入参。
func SampleQuestions[T any](pool []T, count int) []T {
	n := len(pool)
	if count > n {
		count = n
	}
	if count < 0 {
		count = 0
	}
	shuffled := make([]T, n)
	copy(shuffled, pool)
	// 只需洗前 count 个位置
	for i := 0; i < count; i++ {
		j := i + rand.IntN(n-i)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled[:count]
}
