package hash

import (
	"crypto/sha256"
	"encoding/hex"
)

// Bytes 计算内容的 SHA-256（十六进制）。
// 用于在日志里标识每次响应到底返回了哪份内容，便于排查“页面加载了旧数据”之类的问题。
func Bytes(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// Short 返回摘要前 12 位，日志里足够区分。
func Short(b []byte) string {
	return Bytes(b)[:12]
}
