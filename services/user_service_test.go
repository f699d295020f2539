package services

import (
	"errors"
	"testing"

	"github.com/shubhamjhade/Social-Media-app/models"
)

func TestRegisterDuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, newTestConfig())

	if _, err := svc.Register("alice", "pw1", "Alice", "CS2021", "111"); err != nil {
		t.Fatalf("首次注册失败: %v", err)
	}

	_, err := svc.Register("alice", "other", "Alice Two", "", "")
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("重复注册期望 ErrUsernameTaken，实际: %v", err)
	}

	// 不应产生第二条记录
	var count int64
	if err := db.Model(&models.User{}).Where("username = ?", "alice").Count(&count).Error; err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if count != 1 {
		t.Fatalf("期望1条记录，实际 %d 条", count)
	}
}

func TestRegisterCreatesPendingAccount(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, newTestConfig())

	user, err := svc.Register("bob", "pw1", "Bob", "", "")
	if err != nil {
		t.Fatalf("注册失败: %v", err)
	}
	if user.IsApproved || user.IsAdmin {
		t.Fatalf("新账号应为待审批的普通用户: approved=%v admin=%v", user.IsApproved, user.IsAdmin)
	}

	// 密码必须以哈希形式存储
	var stored models.User
	if err := db.First(&stored, user.ID).Error; err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if stored.Password == "pw1" {
		t.Fatal("密码不应以明文存储")
	}
}

func TestAuthenticateStateMachine(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, newTestConfig())

	user, err := svc.Register("alice", "pw1", "Alice", "", "")
	if err != nil {
		t.Fatalf("注册失败: %v", err)
	}

	// 不存在的用户与密码错误返回同一类错误
	if _, err := svc.Authenticate("nobody", "pw1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("不存在的用户期望 ErrInvalidCredentials，实际: %v", err)
	}
	if _, err := svc.Authenticate("alice", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("密码错误期望 ErrInvalidCredentials，实际: %v", err)
	}

	// 凭证正确但待审批，必须与凭证错误区分开
	if _, err := svc.Authenticate("alice", "pw1"); !errors.Is(err, ErrAccountPending) {
		t.Fatalf("待审批账号期望 ErrAccountPending，实际: %v", err)
	}

	// 审批后登录成功
	if err := svc.ApproveUser(user.ID); err != nil {
		t.Fatalf("审批失败: %v", err)
	}
	got, err := svc.Authenticate("alice", "pw1")
	if err != nil {
		t.Fatalf("审批后登录失败: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("期望用户 %d，实际 %d", user.ID, got.ID)
	}
}

func TestApproveUserNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, newTestConfig())

	if err := svc.ApproveUser(9999); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("期望 ErrUserNotFound，实际: %v", err)
	}
}

func TestReconcileOwnerOnFreshDatabase(t *testing.T) {
	db := newTestDB(t)
	cfg := newTestConfig()
	svc := NewUserService(db, cfg)

	if err := svc.ReconcileOwner(); err != nil {
		t.Fatalf("恢复站长账号失败: %v", err)
	}

	owner, err := svc.Authenticate(cfg.OwnerUsername, cfg.OwnerPassword)
	if err != nil {
		t.Fatalf("站长登录失败: %v", err)
	}
	if !owner.IsAdmin || !owner.IsApproved {
		t.Fatalf("站长应为已审批的管理员: admin=%v approved=%v", owner.IsAdmin, owner.IsApproved)
	}
}

func TestReconcileOwnerRecoversFromTampering(t *testing.T) {
	db := newTestDB(t)
	cfg := newTestConfig()
	svc := NewUserService(db, cfg)

	if err := svc.ReconcileOwner(); err != nil {
		t.Fatalf("首次恢复失败: %v", err)
	}

	// 篡改站长记录：降级、吊销审批、改密码
	if err := db.Model(&models.User{}).Where("username = ?", cfg.OwnerUsername).Updates(map[string]interface{}{
		"is_admin":    false,
		"is_approved": false,
		"password":    "hacked",
	}).Error; err != nil {
		t.Fatalf("篡改失败: %v", err)
	}

	// 再次启动时的恢复必须覆盖篡改
	if err := svc.ReconcileOwner(); err != nil {
		t.Fatalf("二次恢复失败: %v", err)
	}
	owner, err := svc.Authenticate(cfg.OwnerUsername, cfg.OwnerPassword)
	if err != nil {
		t.Fatalf("恢复后站长登录失败: %v", err)
	}
	if !owner.IsAdmin || !owner.IsApproved {
		t.Fatalf("站长标志未恢复: admin=%v approved=%v", owner.IsAdmin, owner.IsApproved)
	}
}

func TestReconcileOwnerRecreatesDeletedAccount(t *testing.T) {
	db := newTestDB(t)
	cfg := newTestConfig()
	svc := NewUserService(db, cfg)

	if err := svc.ReconcileOwner(); err != nil {
		t.Fatalf("首次恢复失败: %v", err)
	}
	if err := db.Where("username = ?", cfg.OwnerUsername).Delete(&models.User{}).Error; err != nil {
		t.Fatalf("删除站长失败: %v", err)
	}

	if err := svc.ReconcileOwner(); err != nil {
		t.Fatalf("二次恢复失败: %v", err)
	}
	if _, err := svc.Authenticate(cfg.OwnerUsername, cfg.OwnerPassword); err != nil {
		t.Fatalf("重建后站长登录失败: %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, newTestConfig())

	alice := registerApproved(t, svc, "alice", "pw1")
	registerApproved(t, svc, "bob", "pw2")

	// 改名撞已有用户名
	if _, err := svc.UpdateProfile(alice.ID, "bob", ""); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("期望 ErrUsernameTaken，实际: %v", err)
	}

	// 正常改名加手机号
	updated, err := svc.UpdateProfile(alice.ID, "alice2", "9876543210")
	if err != nil {
		t.Fatalf("更新资料失败: %v", err)
	}
	if updated.Username != "alice2" || updated.Mobile != "9876543210" {
		t.Fatalf("资料未更新: %+v", updated)
	}

	// 改名后旧用户名可被重新注册
	if _, err := svc.Register("alice", "pw3", "", "", ""); err != nil {
		t.Fatalf("旧用户名应可复用: %v", err)
	}
}

func TestDeleteUserInvalidatesLogin(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, newTestConfig())

	alice := registerApproved(t, svc, "alice", "pw1")

	if err := svc.DeleteUser(alice.ID); err != nil {
		t.Fatalf("删除用户失败: %v", err)
	}
	if _, err := svc.GetUserByID(alice.ID); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("期望 ErrUserNotFound，实际: %v", err)
	}

	// 删除后的登录与账号从未存在过表现一致
	if _, err := svc.Authenticate("alice", "pw1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

func TestPendingAndActiveLists(t *testing.T) {
	db := newTestDB(t)
	cfg := newTestConfig()
	svc := NewUserService(db, cfg)

	if err := svc.ReconcileOwner(); err != nil {
		t.Fatalf("恢复站长账号失败: %v", err)
	}
	registerApproved(t, svc, "alice", "pw1")
	if _, err := svc.Register("bob", "pw2", "", "", ""); err != nil {
		t.Fatalf("注册失败: %v", err)
	}

	pending, err := svc.GetPendingUsers()
	if err != nil {
		t.Fatalf("获取待审批列表失败: %v", err)
	}
	if len(pending) != 1 || pending[0].Username != "bob" {
		t.Fatalf("待审批列表错误: %+v", pending)
	}

	// 已审批列表不包含管理员
	active, err := svc.GetActiveUsers()
	if err != nil {
		t.Fatalf("获取已审批列表失败: %v", err)
	}
	if len(active) != 1 || active[0].Username != "alice" {
		t.Fatalf("已审批列表错误: %+v", active)
	}
}
