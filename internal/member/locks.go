package member

import "sync"

// KeyLock 按电话号码提供成员级互斥。
// 同一个成员的所有状态变更操作串行执行；不同成员可以并发处理。
// 锁实例创建后不回收：成员规模是小而有界的。
type KeyLock struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewKeyLock 创建一个空的成员锁表。
func NewKeyLock() *KeyLock {
	return &KeyLock{locks: make(map[string]*sync.Mutex)}
}

// Acquire 获取指定号码的互斥锁，返回对应的解锁函数。
// 用法: defer locks.Acquire(phone)()
func (k *KeyLock) Acquire(phone string) func() {
	k.mu.Lock()
	l, ok := k.locks[phone]
	if !ok {
		l = &sync.Mutex{}
		k.locks[phone] = l
	}
	k.mu.Unlock()

	l.Lock()
	return l.Unlock
}
