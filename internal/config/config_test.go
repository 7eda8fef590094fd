package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velmor/VCS-ConsultationService/internal/domain"
)

const validConfig = `
[server]
http_port = 8080

[database]
host = "localhost"
port = 5432
user = "app"
password = "secret"
dbname = "consultations"
sslmode = "disable"

[business_hours]
open = "09:00"
close = "18:00"

[[service_types]]
service_type_id = "virtual-consult-basic"
job_type_id = "jt_basic"
label = "Basic Consultation"
duration_minutes = 30
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultMinBookingNoticeMinutes, cfg.Booking.MinBookingNoticeMinutes)
	assert.Equal(t, domain.DefaultAvailabilityRangeDays, cfg.Booking.DefaultRangeDays)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "info", cfg.Logs.Level)
}

func TestLoad_RejectsEmptyServiceTypes(t *testing.T) {
	content := `
[business_hours]
open = "09:00"
close = "18:00"
`
	_, err := Load(writeConfig(t, content))
	assert.Error(t, err)
}

func TestLoad_RejectsDuplicateServiceTypeIDs(t *testing.T) {
	content := validConfig + `
[[service_types]]
service_type_id = "virtual-consult-basic"
job_type_id = "jt_other"
label = "Other"
duration_minutes = 60
`
	_, err := Load(writeConfig(t, content))
	assert.Error(t, err)
}

func TestLoad_RejectsInvertedBusinessHours(t *testing.T) {
	content := `
[business_hours]
open = "18:00"
close = "09:00"

[[service_types]]
service_type_id = "x"
job_type_id = "y"
label = "Z"
duration_minutes = 30
`
	_, err := Load(writeConfig(t, content))
	assert.Error(t, err)
}

func TestBusinessHours_Parsing(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)

	hours, err := cfg.BusinessHours()
	require.NoError(t, err)
	assert.Equal(t, 9*60, hours.OpenMinutes)
	assert.Equal(t, 18*60, hours.CloseMinutes)
	// Зона не указана: по умолчанию UTC
	assert.Equal(t, time.UTC, hours.Location)
}

func TestBusinessHours_ExplicitTimezone(t *testing.T) {
	content := strings.Replace(validConfig,
		`close = "18:00"`,
		"close = \"18:00\"\ntimezone = \"Europe/Moscow\"", 1)

	cfg, err := Load(writeConfig(t, content))
	require.NoError(t, err)

	hours, err := cfg.BusinessHours()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Moscow", hours.Location.String())
}

func TestLoad_RejectsUnknownTimezone(t *testing.T) {
	content := strings.Replace(validConfig,
		`close = "18:00"`,
		"close = \"18:00\"\ntimezone = \"Mars/Olympus\"", 1)

	_, err := Load(writeConfig(t, content))
	assert.Error(t, err)
}

func TestServiceTypeMappings(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)

	mappings := cfg.ServiceTypeMappings()
	require.Len(t, mappings, 1)
	assert.Equal(t, "virtual-consult-basic", mappings[0].ServiceTypeID)
	assert.Equal(t, "jt_basic", mappings[0].JobTypeID)
	assert.Equal(t, 30, mappings[0].DurationMinutes)
}
