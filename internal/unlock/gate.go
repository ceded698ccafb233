package unlock

import "unlock_bot/internal/models"

// Authorize: проверка доступа до того, как секрет будет показан.
// Without a configured role everyone passes; with one, only guild members
// holding that role do.
func Authorize(viewer models.Viewer, cfg models.UnlockConfig) bool {
	if !cfg.Restricted() {
		return true
	}
	if !viewer.Member {
		return false
	}
	return viewer.HasRole(cfg.AllowedRoleID)
}
