package unique

import (
	"sort"
	"sync"

	"github.com/ceyewan/unique/xerrors"
)

// Namespace 注册表中内置与自定义生成器所在的分组键
const Namespace = "unique"

// Resolver 按名称查找生成器
type Resolver interface {
	Resolve(name string) (Generator, error)
}

// Resolve 在两级映射 namespace -> name -> Generator 中查找生成器
//
// 只查找不调用。分组缺失返回 ErrNamespaceNotFound，名称缺失返回
// ErrGeneratorNotFound，两者都可用 errors.Is(err, xerrors.ErrNotFound) 判断。
// 名称区分大小写。
func Resolve(plugins map[string]map[string]Generator, name string) (Generator, error) {
	group, ok := plugins[Namespace]
	if !ok {
		return nil, xerrors.Wrapf(ErrNamespaceNotFound, "%q", Namespace)
	}
	g, ok := group[name]
	if !ok || g == nil {
		return nil, xerrors.Wrapf(ErrGeneratorNotFound, "%q", name)
	}
	return g, nil
}

// Plugins 字面量形式的注册表，适合测试中临时构造
//
//	d, _ := unique.New(counter.NewMemory(), unique.WithResolver(unique.Plugins{
//	    unique.Namespace: {"test": unique.GeneratorFunc(...)},
//	}))
type Plugins map[string]map[string]Generator

// Resolve 实现 Resolver
func (p Plugins) Resolve(name string) (Generator, error) {
	return Resolve(p, name)
}

// ========================================
// 注册表 (Registry)
// ========================================

// Registry 并发安全的生成器注册表
type Registry struct {
	mu      sync.RWMutex
	plugins map[string]map[string]Generator
}

// NewRegistry 创建空注册表，连 Namespace 分组都不存在
func NewRegistry() *Registry {
	return &Registry{plugins: make(map[string]map[string]Generator)}
}

// DefaultRegistry 创建已注册全部内置生成器的注册表
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for name, g := range builtins() {
		r.MustRegister(name, g)
	}
	return r
}

// Register 注册生成器，同名覆盖
func (r *Registry) Register(name string, g Generator) error {
	if name == "" {
		return xerrors.WithCode(xerrors.ErrInvalidInput, "generator_name_empty")
	}
	if g == nil {
		return xerrors.WithCode(xerrors.ErrInvalidInput, "generator_nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	group, ok := r.plugins[Namespace]
	if !ok {
		group = make(map[string]Generator)
		r.plugins[Namespace] = group
	}
	group[name] = g
	return nil
}

// MustRegister 注册生成器，失败时 panic
func (r *Registry) MustRegister(name string, g Generator) {
	if err := r.Register(name, g); err != nil {
		panic(err)
	}
}

// Resolve 实现 Resolver
func (r *Registry) Resolve(name string) (Generator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return Resolve(r.plugins, name)
}

// Names 返回已注册的生成器名称（升序）
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	group := r.plugins[Namespace]
	names := make([]string, 0, len(group))
	for name := range group {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
