package book

import (
	"testing"
)

// TestCover_IsValid 装帧类型只允许HARD/SOFT
func TestCover_IsValid(t *testing.T) {
	if !CoverHard.IsValid() || !CoverSoft.IsValid() {
		t.Error("HARD/SOFT应为合法装帧类型")
	}
	if Cover("SPIRAL").IsValid() {
		t.Error("SPIRAL不应为合法装帧类型")
	}
	if Cover("").IsValid() {
		t.Error("空装帧类型不应合法")
	}
}

// TestDecrStock 借出扣减库存,扣减后不能为负
func TestDecrStock(t *testing.T) {
	b := NewBook("Test Book", "Author", CoverHard, 1, 500)

	if err := b.DecrStock(); err != nil {
		t.Fatalf("库存为1时扣减应成功，实际失败: %v", err)
	}
	if b.Stock != 0 {
		t.Errorf("期望库存0，实际%d", b.Stock)
	}

	// 库存已为0,再次扣减必须失败且库存不变
	if err := b.DecrStock(); err != ErrOutOfStock {
		t.Errorf("期望ErrOutOfStock，实际%v", err)
	}
	if b.Stock != 0 {
		t.Errorf("扣减失败后库存应保持0，实际%d", b.Stock)
	}
}

// TestIncrStock 归还入库无前置条件
func TestIncrStock(t *testing.T) {
	b := NewBook("Test Book", "Author", CoverSoft, 0, 500)
	b.IncrStock()
	if b.Stock != 1 {
		t.Errorf("期望库存1，实际%d", b.Stock)
	}
}

// TestDecrIncrRoundTrip 借出+归还后库存回到原值
func TestDecrIncrRoundTrip(t *testing.T) {
	b := NewBook("Test Book", "Author", CoverHard, 3, 500)
	if err := b.DecrStock(); err != nil {
		t.Fatalf("扣减失败: %v", err)
	}
	b.IncrStock()
	if b.Stock != 3 {
		t.Errorf("期望库存回到3，实际%d", b.Stock)
	}
}

// TestUpdateDailyFee 费用不能为负
func TestUpdateDailyFee(t *testing.T) {
	b := NewBook("Test Book", "Author", CoverHard, 1, 500)
	if err := b.UpdateDailyFee(-1); err != ErrInvalidFee {
		t.Errorf("期望ErrInvalidFee，实际%v", err)
	}
	if err := b.UpdateDailyFee(0); err != nil {
		t.Errorf("费用为0应合法，实际失败: %v", err)
	}
}

// TestUpdateInfo 非法装帧类型被拒绝,空字段不覆盖
func TestUpdateInfo(t *testing.T) {
	b := NewBook("Old Title", "Old Author", CoverHard, 1, 500)

	if err := b.UpdateInfo("", "", Cover("BAD")); err != ErrInvalidCover {
		t.Errorf("期望ErrInvalidCover，实际%v", err)
	}

	if err := b.UpdateInfo("New Title", "", CoverSoft); err != nil {
		t.Fatalf("更新失败: %v", err)
	}
	if b.Title != "New Title" || b.Author != "Old Author" || b.Cover != CoverSoft {
		t.Errorf("更新结果错误: %+v", b)
	}
}
