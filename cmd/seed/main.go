package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"kinderadmin/internal/migrations"
	"kinderadmin/internal/pageguides"
	"kinderadmin/internal/permissions"
	"kinderadmin/internal/posters"
	"kinderadmin/internal/shared/config"
	"kinderadmin/internal/shared/constants"
	"kinderadmin/internal/shared/database"
	"kinderadmin/internal/users"
	"kinderadmin/pkg/cache"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Seeder struct {
	db    *database.DB
	cache cache.Service
}

var clean bool

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the kinderadmin database with roles, permissions and fixtures",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDatabase(cmd.Context(), func(ctx context.Context, db *database.DB) error {
			seeder := &Seeder{db: db, cache: cache.NewService(db.Redis)}

			if clean {
				fmt.Println("\n🧹 Cleaning database...")
				if err := seeder.CleanDatabase(ctx); err != nil {
					return fmt.Errorf("failed to clean database: %w", err)
				}
				fmt.Println("✅ Database cleaned successfully")
			}

			fmt.Println("\n🌱 Seeding database...")
			if err := seeder.SeedAll(ctx); err != nil {
				return fmt.Errorf("failed to seed database: %w", err)
			}
			fmt.Println("✅ Database seeded successfully")
			return nil
		})
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations and print their status",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDatabase(cmd.Context(), func(ctx context.Context, db *database.DB) error {
			svc := migrations.NewService(migrations.NewRepository(db.PostgreSQL), migrations.Registry())
			statuses, err := svc.List(ctx)
			if err != nil {
				return err
			}
			for _, st := range statuses {
				mark := " "
				if st.Applied {
					mark = "x"
				}
				fmt.Printf("  [%s] %s\n", mark, st.Name)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.Flags().BoolVar(&clean, "clean", false, "truncate seeded tables before seeding")
	rootCmd.AddCommand(migrateCmd)
}

func main() {
	fmt.Println("🌱 Starting Kinderadmin Database Seeder...")

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Fatal(err)
	}
}

// withDatabase opens the database, applies pending migrations and runs fn.
func withDatabase(parent context.Context, fn func(ctx context.Context, db *database.DB) error) error {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(parent, 5*time.Minute)
	defer cancel()

	migrationService := migrations.NewService(migrations.NewRepository(db.PostgreSQL), migrations.Registry())
	if _, err := migrationService.RunPending(ctx); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return fn(ctx, db)
}

// CleanDatabase truncates the seeded tables in dependency order.
func (s *Seeder) CleanDatabase(ctx context.Context) error {
	tables := []string{
		"user_roles",
		"role_permissions",
		"permissions",
		"roles",
		"page_guide_sections",
		"page_guides",
		"poster_templates",
		"users",
	}

	return s.db.PostgreSQL.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, table := range tables {
			fmt.Printf("  Truncating table: %s\n", table)
			if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
				return fmt.Errorf("failed to truncate table %s: %w", table, err)
			}
		}
		return nil
	})
}

// SeedAll seeds every fixture. Each step is idempotent.
func (s *Seeder) SeedAll(ctx context.Context) error {
	roleIDs, err := s.SeedRoles(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed roles: %w", err)
	}

	permIDs, err := s.SeedPermissions(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed permissions: %w", err)
	}

	if err := s.SeedRolePermissions(ctx, roleIDs, permIDs); err != nil {
		return fmt.Errorf("failed to seed role permissions: %w", err)
	}

	userIDs, err := s.SeedUsers(ctx, roleIDs)
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	if err := s.SeedPosterTemplates(ctx); err != nil {
		return fmt.Errorf("failed to seed poster templates: %w", err)
	}

	if err := s.SeedPageGuides(ctx, userIDs[string(users.RoleAdmin)]); err != nil {
		return fmt.Errorf("failed to seed page guides: %w", err)
	}

	if _, err := s.cache.DeletePattern(ctx, constants.PATTERN_INVALIDATE_PERMISSIONS_ALL); err != nil {
		log.Printf("Warning: Failed to clear permission cache: %v", err)
	}
	return nil
}

func (s *Seeder) SeedRoles(ctx context.Context) (map[string]uint, error) {
	fmt.Println("  🛡️  Seeding roles...")

	roles := []permissions.Role{
		{Name: "超级管理员", Code: string(users.RoleAdmin), Description: "拥有全部权限", Status: permissions.StatusEnabled},
		{Name: "园长", Code: string(users.RolePrincipal), Description: "园所管理", Status: permissions.StatusEnabled},
		{Name: "教师", Code: string(users.RoleTeacher), Description: "班级与招生工作", Status: permissions.StatusEnabled},
		{Name: "家长", Code: string(users.RoleParent), Description: "家长端访问", Status: permissions.StatusEnabled},
	}

	ids := make(map[string]uint, len(roles))
	for i := range roles {
		role := roles[i]
		if err := s.db.PostgreSQL.WithContext(ctx).
			Where(permissions.Role{Code: role.Code}).
			Attrs(role).
			FirstOrCreate(&role).Error; err != nil {
			return nil, fmt.Errorf("failed to create role %s: %w", role.Code, err)
		}
		ids[role.Code] = role.ID
		fmt.Printf("    ✅ Role: %s (%s)\n", role.Name, role.Code)
	}
	return ids, nil
}

type permissionSeed struct {
	perm     permissions.Permission
	children []permissionSeed
}

func menu(code, name, path, component, icon string, sort int, children ...permissionSeed) permissionSeed {
	kind := permissions.TypeMenu
	if len(children) > 0 {
		kind = permissions.TypeCatalog
	}
	return permissionSeed{
		perm: permissions.Permission{
			Name:        code,
			ChineseName: name,
			Code:        code,
			Type:        kind,
			Path:        path,
			Component:   component,
			Icon:        icon,
			Sort:        sort,
			Status:      permissions.StatusEnabled,
		},
		children: children,
	}
}

func button(code, name string, sort int) permissionSeed {
	return permissionSeed{perm: permissions.Permission{
		Name:        code,
		ChineseName: name,
		Code:        code,
		Type:        permissions.TypeButton,
		Sort:        sort,
		Status:      permissions.StatusEnabled,
	}}
}

func permissionTree() []permissionSeed {
	return []permissionSeed{
		menu("dashboard", "首页", "/dashboard", "dashboard/index", "home", 1),
		menu("enrollment", "招生管理", "/enrollment", "", "user-add", 10,
			menu("enrollment:applications", "报名管理", "/enrollment/applications", "enrollment/applications/index", "", 1,
				button("enrollment:applications:review", "审核报名", 1),
				button("enrollment:applications:delete", "删除报名", 2),
			),
			menu("enrollment:stats", "招生统计", "/enrollment/stats", "enrollment/stats/index", "", 2),
		),
		menu("marketing", "营销中心", "/marketing", "", "rocket", 20,
			menu("marketing:channels", "渠道管理", "/marketing/channels", "marketing/channels/index", "", 1),
			menu("marketing:referrals", "推广码", "/marketing/referrals", "marketing/referrals/index", "", 2),
			menu("marketing:conversions", "转化分析", "/marketing/conversions", "marketing/conversions/index", "", 3),
			menu("marketing:funnel", "招生漏斗", "/marketing/funnel", "marketing/funnel/index", "", 4),
			menu("marketing:posters", "海报中心", "/marketing/posters", "marketing/posters/index", "", 5),
		),
		menu("personnel", "人员管理", "/personnel", "", "team", 30,
			menu("personnel:students", "学生", "/personnel/students", "personnel/students/index", "", 1),
			menu("personnel:teachers", "教师", "/personnel/teachers", "personnel/teachers/index", "", 2),
			menu("personnel:parents", "家长", "/personnel/parents", "personnel/parents/index", "", 3),
		),
		menu("system", "系统管理", "/system", "", "setting", 90,
			menu("system:page-guides", "页面说明", "/system/page-guides", "system/page-guides/index", "", 1),
			menu("system:migrations", "数据库迁移", "/system/migrations", "system/migrations/index", "", 2),
			menu("system:error-logs", "错误日志", "/system/error-logs", "system/error-logs/index", "", 3),
			menu("system:permission-cache", "权限缓存", "/system/permission-cache", "system/permission-cache/index", "", 4),
		),
	}
}

// SeedPermissions writes the menu tree and returns ids by code.
func (s *Seeder) SeedPermissions(ctx context.Context) (map[string]uint, error) {
	fmt.Println("  🔑 Seeding permissions...")

	ids := map[string]uint{}
	var walk func(nodes []permissionSeed, parentID *uint) error
	walk = func(nodes []permissionSeed, parentID *uint) error {
		for _, node := range nodes {
			perm := node.perm
			perm.ParentID = parentID
			if err := s.db.PostgreSQL.WithContext(ctx).
				Where(permissions.Permission{Code: perm.Code}).
				Attrs(perm).
				FirstOrCreate(&perm).Error; err != nil {
				return fmt.Errorf("failed to create permission %s: %w", perm.Code, err)
			}
			ids[perm.Code] = perm.ID

			id := perm.ID
			if err := walk(node.children, &id); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(permissionTree(), nil); err != nil {
		return nil, err
	}
	fmt.Printf("    ✅ %d permissions\n", len(ids))
	return ids, nil
}

var rolePrefixes = map[users.Role][]string{
	users.RolePrincipal: {"dashboard", "enrollment", "marketing", "personnel", "system:page-guides"},
	users.RoleTeacher:   {"dashboard", "enrollment", "marketing:posters", "personnel:students", "personnel:parents"},
	users.RoleParent:    {"dashboard"},
}

func hasPrefix(code string, prefixes []string) bool {
	for _, p := range prefixes {
		if code == p || len(code) > len(p) && code[:len(p)+1] == p+":" {
			return true
		}
	}
	return false
}

// SeedRolePermissions grants admin everything and the other roles the
// subtrees listed in rolePrefixes. Parent catalogs of a granted menu are
// granted too so the menu tree stays connected.
func (s *Seeder) SeedRolePermissions(ctx context.Context, roleIDs, permIDs map[string]uint) error {
	fmt.Println("  🔗 Seeding role permissions...")

	var links []permissions.RolePermission
	for code, permID := range permIDs {
		links = append(links, permissions.RolePermission{RoleID: roleIDs[string(users.RoleAdmin)], PermissionID: permID})
		for role, prefixes := range rolePrefixes {
			if hasPrefix(code, prefixes) || isAncestorOf(code, prefixes) {
				links = append(links, permissions.RolePermission{RoleID: roleIDs[string(role)], PermissionID: permID})
			}
		}
	}

	return s.db.PostgreSQL.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(links, 100).Error
}

func isAncestorOf(code string, prefixes []string) bool {
	for _, p := range prefixes {
		if len(p) > len(code) && p[:len(code)+1] == code+":" {
			return true
		}
	}
	return false
}

// SeedUsers creates one account per role and links it to that role.
func (s *Seeder) SeedUsers(ctx context.Context, roleIDs map[string]uint) (map[string]uint, error) {
	fmt.Println("  👤 Seeding users...")

	usersData := []users.User{
		{Username: "admin", RealName: "系统管理员", Email: "admin@kinderadmin.local", Role: users.RoleAdmin},
		{Username: "principal", RealName: "王园长", Phone: "13800000001", Role: users.RolePrincipal},
		{Username: "teacher", RealName: "李老师", Phone: "13800000002", Role: users.RoleTeacher},
		{Username: "parent", RealName: "张家长", Phone: "13800000003", Role: users.RoleParent},
	}

	ids := make(map[string]uint, len(usersData))
	for i := range usersData {
		user := usersData[i]
		user.Status = "active"
		if err := s.db.PostgreSQL.WithContext(ctx).
			Where(users.User{Username: user.Username}).
			Attrs(user).
			FirstOrCreate(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to create user %s: %w", user.Username, err)
		}

		link := permissions.UserRole{UserID: user.ID, RoleID: roleIDs[string(user.Role)]}
		if err := s.db.PostgreSQL.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&link).Error; err != nil {
			return nil, fmt.Errorf("failed to link user %s: %w", user.Username, err)
		}

		ids[string(user.Role)] = user.ID
		fmt.Printf("    ✅ User: %s (%s)\n", user.Username, user.Role)
	}
	return ids, nil
}

func (s *Seeder) SeedPosterTemplates(ctx context.Context) error {
	fmt.Println("  🖼️  Seeding poster templates...")

	templates := []posters.Template{
		{Name: "春季招生", Category: "招生", Description: "春季学期招生宣传", Width: 750, Height: 1334, SortOrder: 1, IsActive: true},
		{Name: "开放日邀请", Category: "活动", Description: "园所开放日邀请函", Width: 750, Height: 1334, SortOrder: 2, IsActive: true},
		{Name: "推荐有礼", Category: "推广", Description: "老带新推广码海报", Width: 1080, Height: 1920, SortOrder: 3, IsActive: true},
	}

	for i := range templates {
		tpl := templates[i]
		if err := s.db.PostgreSQL.WithContext(ctx).
			Where(posters.Template{Name: tpl.Name}).
			Attrs(tpl).
			FirstOrCreate(&tpl).Error; err != nil {
			return fmt.Errorf("failed to create poster template %s: %w", tpl.Name, err)
		}
	}
	fmt.Printf("    ✅ %d poster templates\n", len(templates))
	return nil
}

// SeedPageGuides writes the marketing guides through the page guide service
// so cached lookups are invalidated.
func (s *Seeder) SeedPageGuides(ctx context.Context, adminID uint) error {
	fmt.Println("  📖 Seeding page guides...")

	service := pageguides.NewService(pageguides.NewRepository(s.db.PostgreSQL), s.cache)
	admin := &users.AuthUser{ID: adminID, Username: "admin", Role: users.RoleAdmin}

	results, err := service.SeedPresets(ctx, admin)
	if err != nil {
		return err
	}
	for _, r := range results {
		fmt.Printf("    ✅ Guide: %s (created=%t)\n", r.PagePath, r.Created)
	}
	return nil
}
