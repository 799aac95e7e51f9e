package user

import (
	"context"
	"errors"
	"strings"
	"testing"

	apperrors "github.com/xiebiao/library/pkg/errors"
)

// fakeUserRepo 内存版Repository实现,用于领域服务测试
type fakeUserRepo struct {
	users  map[string]*User // key: email
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*User), nextID: 1}
}

func (r *fakeUserRepo) Create(_ context.Context, u *User) error {
	if _, ok := r.users[u.Email]; ok {
		return apperrors.ErrEmailDuplicate
	}
	u.ID = r.nextID
	r.nextID++
	r.users[u.Email] = u
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uint) (*User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*User, error) {
	if u, ok := r.users[email]; ok {
		return u, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, u *User) error {
	r.users[u.Email] = u
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uint) error {
	for email, u := range r.users {
		if u.ID == id {
			delete(r.users, email)
			return nil
		}
	}
	return apperrors.ErrUserNotFound
}

// TestRegister 正常注册:密码被加密,新用户是普通读者
func TestRegister(t *testing.T) {
	svc := NewService(newFakeUserRepo())

	u, err := svc.Register(context.Background(), "alice@example.com", "secret1234", "Alice", "Wang")
	if err != nil {
		t.Fatalf("注册失败: %v", err)
	}
	if u.ID == 0 {
		t.Error("注册后应分配ID")
	}
	if u.Password == "secret1234" {
		t.Error("密码不应明文存储")
	}
	if !strings.HasPrefix(u.Password, "$2") {
		t.Errorf("密码应为bcrypt哈希: got=%s", u.Password[:4])
	}
	if u.IsStaff {
		t.Error("注册入口创建的用户不应是馆员")
	}
	if u.FullName() != "Alice Wang" {
		t.Errorf("FullName错误: got=%s", u.FullName())
	}
}

// TestRegisterEmailDuplicate 重复邮箱返回业务错误
func TestRegisterEmailDuplicate(t *testing.T) {
	svc := NewService(newFakeUserRepo())
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice@example.com", "secret1234", "Alice", "Wang"); err != nil {
		t.Fatalf("首次注册失败: %v", err)
	}
	_, err := svc.Register(ctx, "alice@example.com", "secret1234", "Alice", "Li")
	if !errors.Is(err, apperrors.ErrEmailDuplicate) {
		t.Errorf("expected ErrEmailDuplicate, got %v", err)
	}
}

// TestRegisterInvalidEmail 非法邮箱格式被拒绝
func TestRegisterInvalidEmail(t *testing.T) {
	svc := NewService(newFakeUserRepo())

	for _, email := range []string{"", "not-an-email", "a@b", "alice@.com"} {
		if _, err := svc.Register(context.Background(), email, "secret1234", "A", "B"); err == nil {
			t.Errorf("邮箱 %q 应被拒绝", email)
		}
	}
}

// TestRegisterWeakPassword 密码强度校验:8-20位且包含字母和数字
func TestRegisterWeakPassword(t *testing.T) {
	svc := NewService(newFakeUserRepo())

	cases := []struct {
		name     string
		password string
	}{
		{"过短", "abc1"},
		{"过长", "abcdefghij1234567890x"},
		{"纯字母", "abcdefghij"},
		{"纯数字", "1234567890"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), "a@example.com", tc.password, "A", "B")
			if !errors.Is(err, apperrors.ErrWeakPassword) {
				t.Errorf("expected ErrWeakPassword, got %v", err)
			}
		})
	}
}

// TestLogin 登录校验:正确密码通过,错误密码和未注册邮箱被拒绝
func TestLogin(t *testing.T) {
	svc := NewService(newFakeUserRepo())
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice@example.com", "secret1234", "Alice", "Wang"); err != nil {
		t.Fatalf("注册失败: %v", err)
	}

	u, err := svc.Login(ctx, "alice@example.com", "secret1234")
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}
	if u.Email != "alice@example.com" {
		t.Errorf("登录返回的用户错误: got=%s", u.Email)
	}

	if _, err := svc.Login(ctx, "alice@example.com", "wrong-pass1"); !errors.Is(err, apperrors.ErrInvalidPassword) {
		t.Errorf("expected ErrInvalidPassword, got %v", err)
	}
	if _, err := svc.Login(ctx, "nobody@example.com", "secret1234"); !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}
