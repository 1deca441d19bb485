package migrations

import (
	"kinderadmin/internal/enrollment"
	"kinderadmin/internal/errorlogs"
	"kinderadmin/internal/marketing"
	"kinderadmin/internal/pageguides"
	"kinderadmin/internal/permissions"
	"kinderadmin/internal/personnel"
	"kinderadmin/internal/posters"
	"kinderadmin/internal/shared/database"
	"kinderadmin/internal/users"
)

// Registry lists every schema migration in apply order. Names are recorded
// in schema_migrations and must never change once released.
func Registry() []database.Migration {
	return []database.Migration{
		{
			Name:        "001_users_permissions",
			Description: "用户、角色与权限表",
			Models: []interface{}{
				&users.User{},
				&permissions.Role{},
				&permissions.Permission{},
				&permissions.RolePermission{},
				&permissions.UserRole{},
			},
			Statements: database.PermissionIndexes,
		},
		{
			Name:        "002_enrollment",
			Description: "招生报名表",
			Models:      []interface{}{&enrollment.Application{}},
			Statements:  database.EnrollmentIndexes,
		},
		{
			Name:        "003_marketing",
			Description: "推广渠道、推广码与点击记录",
			Models: []interface{}{
				&marketing.Channel{},
				&marketing.PromotionCode{},
				&marketing.PromotionClick{},
			},
			Statements: database.PromotionCodeConstraints,
		},
		{
			Name:        "004_personnel",
			Description: "人员档案表",
			Models:      []interface{}{&personnel.Person{}},
			Statements:  database.PersonnelIndexes,
		},
		{
			Name:        "005_posters",
			Description: "海报模板与海报",
			Models:      []interface{}{&posters.Template{}, &posters.Poster{}},
		},
		{
			Name:        "006_page_guides",
			Description: "页面说明文档与章节",
			Models:      []interface{}{&pageguides.PageGuide{}, &pageguides.Section{}},
		},
		{
			Name:        "007_client_error_logs",
			Description: "前端与服务端错误日志",
			Models:      []interface{}{&errorlogs.ErrorLog{}},
			Statements:  database.ErrorLogIndexes,
		},
	}
}
