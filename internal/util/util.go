/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package util

import (
	"crypto/rand"

	"github.com/google/uuid"
)

// IntDigits 计算有符号整数的位数（忽略负号）。
func IntDigits(n int) int {
	if n == 0 {
		return 1
	}
	if n < 0 {
		n = -n
	}
	count := 0
	for n > 0 {
		n /= 10
		count++
	}
	return count
}

// RandomString 返回由字母和数字组成的随机串。
func RandomString(n int) string {
	const letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, n)
	_, _ = rand.Read(b)
	for i := range n {
		b[i] = letters[int(b[i])%len(letters)]
	}
	return string(b)
}

// NewUUID 返回随机 UUID v4 字符串。
func NewUUID() string {
	return uuid.NewString()
}
