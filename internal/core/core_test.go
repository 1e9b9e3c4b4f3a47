package core

import (
	"github.com/goatkit/mockdesk/internal/config"
	"github.com/goatkit/mockdesk/internal/models"
	"github.com/goatkit/mockdesk/internal/triggers"
)

const testAdminID = 111

func testConfig() *config.Config {
	return &config.Config{
		Port:               8999,
		DefaultAdminID:     testAdminID,
		DefaultAdminName:   "Default Admin",
		DefaultAdminEmail:  "admin@example.com",
		JobStatusURLPrefix: "/mock.zendesk.com",
	}
}

func testService() *Service {
	return NewService(testConfig(), triggers.NewRunner())
}

func testServiceWithTriggers(runner *triggers.Runner) *Service {
	return NewService(testConfig(), runner)
}

// testSnapshot returns a snapshot with the default admin seeded, the way the
// store hands one out.
func testSnapshot() *models.Snapshot {
	snap := models.NewSnapshot()
	snap.Users[testAdminID] = &models.User{
		ID:        testAdminID,
		Name:      "Default Admin",
		Email:     "admin@example.com",
		CreatedAt: "1970-01-01T00:00:00Z",
	}
	return snap
}
