package repository

import "errors"

// 対象が見つからない
var ErrNotFound = errors.New("not found")

// 在庫が足りない（結果が負になる更新）
var ErrInsufficientStock = errors.New("insufficient stock")

// ユーザーが見つからない
var ErrUserNotFound = errors.New("user not found")
