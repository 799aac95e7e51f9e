package handler

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	appborrowing "github.com/xiebiao/library/internal/application/borrowing"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/borrowing"
	"github.com/xiebiao/library/internal/interface/http/dto"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	"github.com/xiebiao/library/pkg/metrics"
	"github.com/xiebiao/library/pkg/response"
)

// BorrowingHandler 借阅HTTP处理器
type BorrowingHandler struct {
	borrowBookUseCase     *appborrowing.BorrowBookUseCase
	returnBookUseCase     *appborrowing.ReturnBookUseCase
	getBorrowingUseCase   *appborrowing.GetBorrowingUseCase
	listBorrowingsUseCase *appborrowing.ListBorrowingsUseCase
}

// NewBorrowingHandler 创建借阅处理器
func NewBorrowingHandler(
	borrowBookUseCase *appborrowing.BorrowBookUseCase,
	returnBookUseCase *appborrowing.ReturnBookUseCase,
	getBorrowingUseCase *appborrowing.GetBorrowingUseCase,
	listBorrowingsUseCase *appborrowing.ListBorrowingsUseCase,
) *BorrowingHandler {
	return &BorrowingHandler{
		borrowBookUseCase:     borrowBookUseCase,
		returnBookUseCase:     returnBookUseCase,
		getBorrowingUseCase:   getBorrowingUseCase,
		listBorrowingsUseCase: listBorrowingsUseCase,
	}
}

// CreateBorrowing 借书
// @Summary      借书
// @Description  读者借出一本书(需要登录),借阅记录创建与库存扣减在同一事务内,使用悲观锁防止超借
// @Tags         借阅
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateBorrowingRequest true "借书信息"
// @Success      201 {object} response.Response{data=appborrowing.BorrowBookResponse} "借出成功"
// @Failure      400 {object} response.Response "日期区间非法或库存不足"
// @Failure      401 {object} response.Response "未登录"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/borrowings [post]
//
// 防超借说明:
// 两个读者并发借同一本书的最后一册时,后到的事务在SELECT FOR UPDATE上等待,
// 先到的提交后,后到的看到库存0被拒绝,库存不会为负
func (h *BorrowingHandler) CreateBorrowing(c *gin.Context) {
	// 1. 参数绑定与验证
	var req dto.CreateBorrowingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	// 2. 借阅人永远是当前登录用户(不接受替他人借书)
	userID := middleware.MustGetUserID(c)

	// 3. 日期解析(binding已校验格式)
	borrowDate, _ := time.Parse("2006-01-02", req.BorrowDate)
	expectedReturnDate, _ := time.Parse("2006-01-02", req.ExpectedReturnDate)

	// 4. 调用应用层用例
	result, err := h.borrowBookUseCase.Execute(c.Request.Context(), appborrowing.BorrowBookRequest{
		UserID:             userID,
		BookID:             req.BookID,
		BorrowDate:         borrowDate,
		ExpectedReturnDate: expectedReturnDate,
	})

	if err != nil {
		// 业务指标:记录被拒绝的借出
		switch {
		case errors.Is(err, book.ErrOutOfStock):
			metrics.IncBorrowingRejected("out_of_stock")
		case errors.Is(err, borrowing.ErrInvalidDateRange):
			metrics.IncBorrowingRejected("invalid_date_range")
		}
		response.Error(c, err)
		return
	}

	metrics.IncBorrowingOpened()

	// 5. 构建HTTP响应(新资源创建返回201)
	response.Created(c, result)
}

// ReturnBorrowing 还书
// @Summary      还书
// @Description  归还一条未归还的借阅(本人或馆员),归还写入与库存回增在同一事务内
// @Tags         借阅
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "借阅ID"
// @Success      200 {object} response.Response{data=appborrowing.ReturnBookResponse} "归还成功"
// @Failure      400 {object} response.Response "已归还过"
// @Failure      401 {object} response.Response "未登录"
// @Failure      403 {object} response.Response "无权归还他人借阅"
// @Failure      404 {object} response.Response "借阅记录不存在"
// @Router       /api/v1/borrowings/{id}/return [post]
func (h *BorrowingHandler) ReturnBorrowing(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的借阅ID")
		return
	}

	actor := middleware.GetActor(c)

	result, err := h.returnBookUseCase.Execute(c.Request.Context(), actor, uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}

	metrics.IncBorrowingReturned()

	response.SuccessWithMessage(c, appborrowing.ReturnMessage, result)
}

// GetBorrowing 借阅详情
// @Summary      借阅详情
// @Description  查询单条借阅记录(本人或馆员),内嵌图书与读者摘要
// @Tags         借阅
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "借阅ID"
// @Success      200 {object} response.Response{data=appborrowing.BorrowingListItem}
// @Failure      401 {object} response.Response "未登录"
// @Failure      403 {object} response.Response "无权查看他人借阅"
// @Failure      404 {object} response.Response "借阅记录不存在"
// @Router       /api/v1/borrowings/{id} [get]
func (h *BorrowingHandler) GetBorrowing(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的借阅ID")
		return
	}

	actor := middleware.GetActor(c)

	result, err := h.getBorrowingUseCase.Execute(c.Request.Context(), actor, uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListBorrowings 借阅列表
// @Summary      借阅列表
// @Description  查询借阅记录(需要登录)。普通读者只能看到自己的借阅;馆员可查看全部并按user_id过滤;is_active按归还状态过滤
// @Tags         借阅
// @Produce      json
// @Security     BearerAuth
// @Param        user_id query int false "按读者过滤(仅馆员生效)"
// @Param        is_active query bool false "true=仅未归还,false=仅已归还"
// @Param        page query int false "页码" default(1)
// @Param        page_size query int false "每页数量" default(20)
// @Success      200 {object} response.Response{data=appborrowing.ListBorrowingsResponse}
// @Failure      401 {object} response.Response "未登录"
// @Router       /api/v1/borrowings [get]
func (h *BorrowingHandler) ListBorrowings(c *gin.Context) {
	var req dto.ListBorrowingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	actor := middleware.GetActor(c)

	result, err := h.listBorrowingsUseCase.Execute(c.Request.Context(), actor, appborrowing.ListBorrowingsRequest{
		UserID:   req.UserID,
		IsActive: req.IsActive,
		Page:     req.Page,
		PageSize: req.PageSize,
	})

	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
