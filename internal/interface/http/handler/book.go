package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/library/internal/application/book"
	"github.com/xiebiao/library/internal/interface/http/dto"
	"github.com/xiebiao/library/pkg/response"
)

// BookHandler 图书HTTP处理器
// 目录浏览(列表/详情)是公开接口;
// 入库/修改/下架挂RequireAuth+RequireStaff中间件
type BookHandler struct {
	addBookUseCase    *appbook.AddBookUseCase
	getBookUseCase    *appbook.GetBookUseCase
	updateBookUseCase *appbook.UpdateBookUseCase
	deleteBookUseCase *appbook.DeleteBookUseCase
	listBooksUseCase  *appbook.ListBooksUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	addBookUseCase *appbook.AddBookUseCase,
	getBookUseCase *appbook.GetBookUseCase,
	updateBookUseCase *appbook.UpdateBookUseCase,
	deleteBookUseCase *appbook.DeleteBookUseCase,
	listBooksUseCase *appbook.ListBooksUseCase,
) *BookHandler {
	return &BookHandler{
		addBookUseCase:    addBookUseCase,
		getBookUseCase:    getBookUseCase,
		updateBookUseCase: updateBookUseCase,
		deleteBookUseCase: deleteBookUseCase,
		listBooksUseCase:  listBooksUseCase,
	}
}

// AddBook 新书入库
// @Summary      新书入库
// @Description  馆员向目录添加新书
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.AddBookRequest true "图书信息"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      401 {object} response.Response "未登录"
// @Failure      403 {object} response.Response "非馆员"
// @Router       /api/v1/books [post]
func (h *BookHandler) AddBook(c *gin.Context) {
	// 1. 参数绑定与验证
	var req dto.AddBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	// 2. 调用应用层用例
	result, err := h.addBookUseCase.Execute(c.Request.Context(), appbook.AddBookRequest{
		Title:    req.Title,
		Author:   req.Author,
		Cover:    req.Cover,
		Stock:    req.Stock,
		DailyFee: req.DailyFee,
	})

	if err != nil {
		response.Error(c, err)
		return
	}

	// 3. 构建HTTP响应
	response.Success(c, &dto.BookResponse{
		ID:           result.ID,
		Title:        result.Title,
		Author:       result.Author,
		Cover:        result.Cover,
		Stock:        result.Stock,
		DailyFee:     result.DailyFee,
		DailyFeeYuan: dto.FormatFeeYuan(result.DailyFee),
		CreatedAt:    result.CreatedAt,
		UpdatedAt:    result.CreatedAt, // 新创建时UpdatedAt等于CreatedAt
	})
}

// GetBook 图书详情
// @Summary      图书详情
// @Description  查询单本图书信息
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的图书ID")
		return
	}

	result, err := h.getBookUseCase.Execute(c.Request.Context(), uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toBookResponse(result))
}

// UpdateBook 修改图书信息
// @Summary      修改图书
// @Description  馆员修改图书的标题/作者/装帧/费用(不含库存)
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Param        request body dto.UpdateBookRequest true "图书信息"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      403 {object} response.Response "非馆员"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的图书ID")
		return
	}

	var req dto.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.updateBookUseCase.Execute(c.Request.Context(), uint(id), appbook.UpdateBookRequest{
		Title:    req.Title,
		Author:   req.Author,
		Cover:    req.Cover,
		DailyFee: req.DailyFee,
	})

	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toBookResponse(result))
}

// DeleteBook 下架图书
// @Summary      下架图书
// @Description  馆员将图书从目录移除(软删除)
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response "下架成功"
// @Failure      403 {object} response.Response "非馆员"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的图书ID")
		return
	}

	if err := h.deleteBookUseCase.Execute(c.Request.Context(), uint(id)); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// ListBooks 图书列表
// @Summary      图书列表
// @Description  分页浏览目录,支持关键词搜索与排序
// @Tags         图书
// @Produce      json
// @Param        page query int false "页码" default(1)
// @Param        page_size query int false "每页数量" default(20)
// @Param        keyword query string false "搜索关键词"
// @Param        sort_by query string false "排序方式" Enums(title_asc, created_at_desc)
// @Success      200 {object} response.Response{data=dto.ListBooksResponse}
// @Router       /api/v1/books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	var req dto.ListBooksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.listBooksUseCase.Execute(c.Request.Context(), appbook.ListBooksRequest{
		Page:     req.Page,
		PageSize: req.PageSize,
		Keyword:  req.Keyword,
		SortBy:   req.SortBy,
	})

	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]dto.BookListItem, len(result.List))
	for i, item := range result.List {
		list[i] = dto.BookListItem{
			ID:           item.ID,
			Title:        item.Title,
			Author:       item.Author,
			Cover:        item.Cover,
			Stock:        item.Stock,
			DailyFee:     item.DailyFee,
			DailyFeeYuan: dto.FormatFeeYuan(item.DailyFee),
			CreatedAt:    item.CreatedAt,
		}
	}

	response.Success(c, &dto.ListBooksResponse{
		List:  list,
		Total: result.Total,
		Page:  result.Page,
		Size:  result.PageSize,
	})
}

// toBookResponse 应用层详情DTO → HTTP响应DTO
func toBookResponse(d *appbook.BookDetail) *dto.BookResponse {
	return &dto.BookResponse{
		ID:           d.ID,
		Title:        d.Title,
		Author:       d.Author,
		Cover:        d.Cover,
		Stock:        d.Stock,
		DailyFee:     d.DailyFee,
		DailyFeeYuan: dto.FormatFeeYuan(d.DailyFee),
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}
