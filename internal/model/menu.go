package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Menu type values. Containers frame child pages, pages render views,
// actions only carry button-level permission codes.
const (
	MenuTypeContainer = 0
	MenuTypePage      = 1
	MenuTypeAction    = 2
)

// Menu represents one node of the navigation menu tree.
type Menu struct {
	ID        uint64         `json:"id" gorm:"primaryKey;autoIncrement;comment:菜单ID"`
	ParentID  uint64         `json:"parent_id" gorm:"default:0;index:idx_parent_id;comment:父菜单ID，0为根"`
	Title     string         `json:"title" gorm:"size:64;not null;comment:菜单标题，同时作为路由名"`
	Path      string         `json:"path" gorm:"size:255;comment:路由路径"`
	Component string         `json:"component" gorm:"size:255;comment:前端视图引用"`
	Redirect  string         `json:"redirect" gorm:"size:255;comment:重定向路径"`
	Icon      string         `json:"icon" gorm:"size:64;comment:图标"`
	MenuType  int8           `json:"menu_type" gorm:"default:1;index:idx_menu_type;comment:类型 0目录 1页面 2按钮"`
	Sort      int            `json:"sort" gorm:"default:0;comment:同级排序，升序"`
	Perms     string         `json:"perms" gorm:"size:512;comment:权限码，逗号分隔"`
	Hidden    bool           `json:"hidden" gorm:"default:false;comment:是否在导航中隐藏"`
	KeepAlive bool           `json:"keepalive" gorm:"default:false;comment:页面是否缓存"`
	Status    int            `json:"status" gorm:"default:1;index:idx_status;comment:状态 1启用 0禁用"`
	CreatedAt int64          `json:"created_at" gorm:"autoCreateTime:milli;comment:创建时间"`
	UpdatedAt int64          `json:"updated_at" gorm:"autoUpdateTime:milli;comment:更新时间"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index;comment:软删除时间"`
}

// MenuList contains a list of menus and pagination info.
type MenuList struct {
	TotalCount int64   `json:"totalCount"`
	Items      []*Menu `json:"items"`
}

// TableName returns the table name for GORM.
func (m *Menu) TableName() string {
	return "menus"
}

// BeforeCreate sets the CreatedAt and UpdatedAt fields.
func (m *Menu) BeforeCreate(tx *gorm.DB) (err error) {
	now := time.Now().UnixMilli()
	m.CreatedAt = now
	m.UpdatedAt = now
	return
}

// BeforeUpdate sets the UpdatedAt field.
func (m *Menu) BeforeUpdate(tx *gorm.DB) (err error) {
	m.UpdatedAt = time.Now().UnixMilli()
	return
}

// PermList splits the comma separated permission codes. Blank entries are
// dropped so "a,,b" and "a, b" both yield two codes.
func (m *Menu) PermList() []string {
	if m.Perms == "" {
		return nil
	}
	parts := strings.Split(m.Perms, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// RoleMenu grants a menu to a role.
type RoleMenu struct {
	ID        uint64 `json:"id" gorm:"primaryKey;autoIncrement"`
	RoleID    uint64 `json:"role_id" gorm:"uniqueIndex:uk_role_menu;index:idx_role_id;not null;comment:角色ID"`
	MenuID    uint64 `json:"menu_id" gorm:"uniqueIndex:uk_role_menu;index:idx_menu_id;not null;comment:菜单ID"`
	CreatedAt int64  `json:"created_at" gorm:"autoCreateTime:milli;comment:创建时间"`
}

// TableName returns the table name for GORM.
func (rm *RoleMenu) TableName() string {
	return "role_menus"
}

// BeforeCreate sets the CreatedAt field.
func (rm *RoleMenu) BeforeCreate(_ *gorm.DB) (err error) {
	rm.CreatedAt = time.Now().UnixMilli()
	return
}
