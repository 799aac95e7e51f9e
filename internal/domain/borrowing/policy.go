package borrowing

// Actor 当前访问者(从JWT Claims提取)
// 只携带授权判断需要的两个事实:是谁、是不是馆员
// 与HTTP请求对象解耦,策略函数可以独立测试
type Actor struct {
	ID      uint
	IsStaff bool
}

// CanOpen 是否允许创建借阅
// 任何已登录用户都可以为自己借书;借阅人永远是访问者本人,
// 不存在"替他人借书"的入口
func CanOpen(actor Actor) bool {
	return actor.ID != 0
}

// CanClose 是否允许归还指定借阅
// 馆员可以归还任意借阅;普通读者只能归还自己的
func CanClose(actor Actor, b *Borrowing) bool {
	if actor.IsStaff {
		return true
	}
	return b.IsOwnedBy(actor.ID)
}

// CanView 是否允许查看指定借阅的详情
// 馆员可以查看任意借阅;普通读者只能查看自己的
func CanView(actor Actor, b *Borrowing) bool {
	if actor.IsStaff {
		return true
	}
	return b.IsOwnedBy(actor.ID)
}

// CanListAll 是否允许查看全部借阅(以及按user_id过滤)
// 与CanClose同一条授权原则:本人或馆员
func CanListAll(actor Actor) bool {
	return actor.IsStaff
}
