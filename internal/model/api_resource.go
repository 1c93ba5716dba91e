package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// APIResource represents one guarded API endpoint: an HTTP method plus a
// path template in the "{param}" form, such as "GET /api/v1/devices/{id}".
type APIResource struct {
	ID          uint64         `json:"id" gorm:"primaryKey;autoIncrement;comment:接口ID"`
	Method      string         `json:"method" gorm:"size:16;not null;uniqueIndex:uk_method_path;comment:HTTP方法"`
	Path        string         `json:"path" gorm:"size:255;not null;uniqueIndex:uk_method_path;comment:路径模板，参数段用{param}"`
	Group       string         `json:"group" gorm:"size:64;index:idx_group;comment:分组"`
	Description string         `json:"description" gorm:"size:255;comment:描述"`
	Status      int            `json:"status" gorm:"default:1;index:idx_status;comment:状态 1启用 0禁用"`
	CreatedAt   int64          `json:"created_at" gorm:"autoCreateTime:milli;comment:创建时间"`
	UpdatedAt   int64          `json:"updated_at" gorm:"autoUpdateTime:milli;comment:更新时间"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index;comment:软删除时间"`
}

// APIResourceList contains a list of API resources and pagination info.
type APIResourceList struct {
	TotalCount int64          `json:"totalCount"`
	Items      []*APIResource `json:"items"`
}

// TableName returns the table name for GORM.
func (a *APIResource) TableName() string {
	return "api_resources"
}

// BeforeCreate sets the CreatedAt and UpdatedAt fields and normalizes the
// method to upper case so "get" and "GET" share one row.
func (a *APIResource) BeforeCreate(tx *gorm.DB) (err error) {
	now := time.Now().UnixMilli()
	a.CreatedAt = now
	a.UpdatedAt = now
	a.Method = strings.ToUpper(strings.TrimSpace(a.Method))
	return
}

// BeforeUpdate sets the UpdatedAt field.
func (a *APIResource) BeforeUpdate(tx *gorm.DB) (err error) {
	a.UpdatedAt = time.Now().UnixMilli()
	a.Method = strings.ToUpper(strings.TrimSpace(a.Method))
	return
}

// Descriptor renders the resource as a permission descriptor string.
func (a *APIResource) Descriptor() string {
	return a.Method + " " + a.Path
}

// RoleAPI grants an API resource to a role.
type RoleAPI struct {
	ID        uint64 `json:"id" gorm:"primaryKey;autoIncrement"`
	RoleID    uint64 `json:"role_id" gorm:"uniqueIndex:uk_role_api;index:idx_role_id;not null;comment:角色ID"`
	APIID     uint64 `json:"api_id" gorm:"uniqueIndex:uk_role_api;index:idx_api_id;not null;comment:接口ID"`
	CreatedAt int64  `json:"created_at" gorm:"autoCreateTime:milli;comment:创建时间"`
}

// TableName returns the table name for GORM.
func (ra *RoleAPI) TableName() string {
	return "role_apis"
}

// BeforeCreate sets the CreatedAt field.
func (ra *RoleAPI) BeforeCreate(_ *gorm.DB) (err error) {
	ra.CreatedAt = time.Now().UnixMilli()
	return
}
