// Package store provides composable query conditions for GORM-backed
// storage layers. Callers describe filtering, pagination, and ordering
// through functional options, and the storage implementation applies them
// to a *gorm.DB in one place.
package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// defaultLimit 表示未显式分页时不追加 LIMIT。
const defaultLimit = -1

// Tenant describes a multi-tenant isolation rule: every query built through
// this package gets an extra equality filter on Key, with the value resolved
// from the request context.
type Tenant struct {
	// Key is the tenant column name, e.g. "tenant_id".
	Key string

	// ValueFunc extracts the tenant value from the request context.
	ValueFunc func(ctx context.Context) string
}

// registeredTenant 全局租户规则，进程启动时注册一次。
var registeredTenant Tenant

// RegisterTenant registers the global tenant rule. Call it once during
// application initialization, before any store queries run.
func RegisterTenant(key string, vf func(ctx context.Context) string) {
	registeredTenant = Tenant{
		Key:       key,
		ValueFunc: vf,
	}
}

// Where applies assembled query conditions to a gorm database handle.
type Where interface {
	Where(db *gorm.DB) *gorm.DB
}

// Query holds a raw condition expression with its arguments.
type Query struct {
	Query interface{}
	Args  []interface{}
}

// Option mutates an Options value.
type Option func(*Options)

// Options aggregates the query conditions of a single storage call:
// equality filters, raw conditions, gorm clauses, and pagination.
type Options struct {
	// Offset is the row offset, 0 means from the beginning.
	Offset int

	// Limit caps the returned rows, defaultLimit means unbounded.
	Limit int

	// Filters holds column = value equality conditions.
	Filters map[any]any

	// Clauses holds extra gorm clause expressions, e.g. ordering.
	Clauses []clause.Expression

	// Queries holds raw conditions built with Q.
	Queries []Query
}

// WithOffset sets the row offset.
func WithOffset(offset int) Option {
	return func(whr *Options) {
		if offset < 0 {
			offset = 0
		}
		whr.Offset = offset
	}
}

// WithLimit caps the number of returned rows.
func WithLimit(limit int) Option {
	return func(whr *Options) {
		if limit <= 0 {
			limit = defaultLimit
		}
		whr.Limit = limit
	}
}

// WithPage translates 1-based page / pageSize pagination into offset and
// limit. Page 0 is treated as page 1.
func WithPage(page int, pageSize int) Option {
	return func(whr *Options) {
		if page <= 0 {
			page = 1
		}
		if pageSize <= 0 {
			pageSize = 10
		}
		WithOffset((page - 1) * pageSize)(whr)
		WithLimit(pageSize)(whr)
	}
}

// WithFilter merges equality filters into the options.
func WithFilter(filter map[any]any) Option {
	return func(whr *Options) {
		for k, v := range filter {
			whr.Filters[k] = v
		}
	}
}

// WithClauses appends gorm clause expressions, such as ordering.
func WithClauses(conds ...clause.Expression) Option {
	return func(whr *Options) {
		whr.Clauses = append(whr.Clauses, conds...)
	}
}

// WithQuery appends a raw condition with arguments.
func WithQuery(query interface{}, args ...interface{}) Option {
	return func(whr *Options) {
		whr.Queries = append(whr.Queries, Query{Query: query, Args: args})
	}
}

// NewWhere builds an Options from the given functional options.
func NewWhere(opts ...Option) *Options {
	whr := &Options{
		Offset:  0,
		Limit:   defaultLimit,
		Filters: map[any]any{},
		Clauses: make([]clause.Expression, 0),
	}
	for _, opt := range opts {
		opt(whr)
	}
	return whr
}

// O sets the offset and returns the options for chaining.
func (whr *Options) O(offset int) *Options {
	WithOffset(offset)(whr)
	return whr
}

// L sets the limit and returns the options for chaining.
func (whr *Options) L(limit int) *Options {
	WithLimit(limit)(whr)
	return whr
}

// P sets page-based pagination and returns the options for chaining.
func (whr *Options) P(page int, pageSize int) *Options {
	WithPage(page, pageSize)(whr)
	return whr
}

// C appends clause expressions and returns the options for chaining.
func (whr *Options) C(conds ...clause.Expression) *Options {
	WithClauses(conds...)(whr)
	return whr
}

// Q appends a raw condition and returns the options for chaining.
func (whr *Options) Q(query interface{}, args ...interface{}) *Options {
	WithQuery(query, args...)(whr)
	return whr
}

// F merges key/value pairs as equality filters and returns the options for
// chaining. An odd number of arguments leaves the options unchanged.
func (whr *Options) F(kvs ...any) *Options {
	if len(kvs)%2 != 0 {
		return whr
	}
	for i := 0; i < len(kvs); i += 2 {
		whr.Filters[kvs[i]] = kvs[i+1]
	}
	return whr
}

// T applies the registered tenant rule, adding the tenant filter resolved
// from ctx. A process without a registered tenant is a no-op.
func (whr *Options) T(ctx context.Context) *Options {
	if registeredTenant.Key != "" && registeredTenant.ValueFunc != nil {
		whr.F(registeredTenant.Key, registeredTenant.ValueFunc(ctx))
	}
	return whr
}

// Where applies all assembled conditions to the database handle.
func (whr *Options) Where(db *gorm.DB) *gorm.DB {
	for _, query := range whr.Queries {
		db = db.Where(query.Query, query.Args...)
	}
	if len(whr.Filters) > 0 {
		// gorm 的 map 条件只认 string 键，这里统一转一次
		conds := make(map[string]any, len(whr.Filters))
		for k, v := range whr.Filters {
			conds[fmt.Sprint(k)] = v
		}
		db = db.Where(conds)
	}
	if len(whr.Clauses) > 0 {
		db = db.Clauses(whr.Clauses...)
	}
	if whr.Offset > 0 {
		db = db.Offset(whr.Offset)
	}
	if whr.Limit > 0 {
		db = db.Limit(whr.Limit)
	}
	return db
}

// F builds an Options holding the given equality filters.
func F(kvs ...any) *Options {
	return NewWhere().F(kvs...)
}

// O builds an Options with the given offset.
func O(offset int) *Options {
	return NewWhere().O(offset)
}

// L builds an Options with the given limit.
func L(limit int) *Options {
	return NewWhere().L(limit)
}

// P builds an Options with page-based pagination.
func P(page int, pageSize int) *Options {
	return NewWhere().P(page, pageSize)
}

// C builds an Options with the given clause expressions.
func C(conds ...clause.Expression) *Options {
	return NewWhere().C(conds...)
}
