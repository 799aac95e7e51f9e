package book

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.ErrBookNotFound

	// ErrOutOfStock 无可借库存(借出时stock已为0)
	ErrOutOfStock = apperrors.ErrOutOfStock

	// ErrInvalidCover 装帧类型不正确(只允许HARD/SOFT)
	ErrInvalidCover = apperrors.New(apperrors.ErrCodeInvalidParams, "装帧类型只能是HARD或SOFT")

	// ErrInvalidStock 无效的库存
	ErrInvalidStock = apperrors.New(apperrors.ErrCodeInvalidParams, "库存不能为负数")

	// ErrInvalidFee 无效的日借阅费
	ErrInvalidFee = apperrors.New(apperrors.ErrCodeInvalidParams, "日借阅费不能为负数")
)
