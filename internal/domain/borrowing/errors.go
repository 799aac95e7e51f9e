package borrowing

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 借阅领域错误定义
var (
	// ErrBorrowingNotFound 借阅记录不存在
	ErrBorrowingNotFound = apperrors.ErrBorrowingNotFound

	// ErrInvalidDateRange 应还日期不晚于借出日期
	ErrInvalidDateRange = apperrors.ErrInvalidDateRange

	// ErrAlreadyReturned 重复归还
	ErrAlreadyReturned = apperrors.ErrAlreadyReturned

	// ErrForbidden 无权操作他人的借阅记录
	ErrForbidden = apperrors.ErrForbidden
)
