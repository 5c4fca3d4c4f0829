package domain

// AppUser mirrors the identity provider's user record. Authentication itself
// happens upstream; this table only exists so memberships have something to
// reference.
type AppUser struct {
	UserID    string  `gorm:"column:user_id;primaryKey" json:"user_id"`
	UserEmail string  `gorm:"column:user_email;not null" json:"user_email"`
	Name      *string `gorm:"column:name" json:"name,omitempty"`
	FirstName *string `gorm:"column:first_name" json:"first_name,omitempty"`
	LastName  *string `gorm:"column:last_name" json:"last_name,omitempty"`
	IsActive  bool    `gorm:"column:is_active;not null;default:true" json:"is_active"`
}

func (AppUser) TableName() string {
	return "app_users"
}

type AppOrg struct {
	OrgID    string `gorm:"column:org_id;primaryKey" json:"org_id"`
	OrgName  string `gorm:"column:org_name;not null" json:"org_name"`
	IsActive bool   `gorm:"column:is_active;not null;default:true" json:"is_active"`
}

func (AppOrg) TableName() string {
	return "app_orgs"
}

const (
	RoleUser    = "user"
	RoleManager = "manager"
)

type UserOrgMembership struct {
	UserID   string `gorm:"column:user_id;primaryKey" json:"user_id"`
	OrgID    string `gorm:"column:org_id;primaryKey" json:"org_id"`
	Role     string `gorm:"column:role;not null;default:user" json:"role"`
	IsActive bool   `gorm:"column:is_active;not null;default:true" json:"is_active"`
}

func (UserOrgMembership) TableName() string {
	return "user_org_memberships"
}
