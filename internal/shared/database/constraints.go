package database

// Constraint and index statements applied after the tables they touch exist.
// Each is idempotent and safe inside a transaction.

var EnrollmentIndexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_enrollment_applications_status_created
		ON enrollment_applications (status, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_enrollment_applications_source
		ON enrollment_applications (application_source)`,
}

// PromotionCodeConstraints keep usage_count within usage_limit even if a
// writer bypasses the conditional update in the click path.
var PromotionCodeConstraints = []string{
	`ALTER TABLE referral_codes DROP CONSTRAINT IF EXISTS chk_referral_codes_usage`,
	`ALTER TABLE referral_codes
		ADD CONSTRAINT chk_referral_codes_usage CHECK (usage_count >= 0 AND (usage_limit = 0 OR usage_count <= usage_limit))`,
	`CREATE INDEX IF NOT EXISTS idx_referral_clicks_code_created
		ON referral_clicks (code, created_at)`,
}

var PersonnelIndexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_personnel_kind_class
		ON personnel (kind, class_name)`,
}

var PermissionIndexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_permissions_status_sort
		ON permissions (status, sort, id)`,
}

var ErrorLogIndexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_client_error_logs_level_created
		ON client_error_logs (level, created_at DESC)`,
}
