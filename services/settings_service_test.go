package services

import (
	"context"
	"testing"

	"nutritrack/models"
	"nutritrack/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSettings_DefaultsWhenMissing(t *testing.T) {
	settings := NewSettingsService(store.NewMemoryStore(), nil)

	st, err := settings.GetSettings(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultSettings(3), st)
}

func TestUpdateSettings_Partial(t *testing.T) {
	settings := NewSettingsService(store.NewMemoryStore(), nil)
	ctx := context.Background()
	theme, protein := "dark", 120.0

	st, err := settings.UpdateSettings(ctx, 1, SettingsPatch{Theme: &theme, ProteinGoal: &protein})
	require.NoError(t, err)
	assert.Equal(t, "dark", st.Theme)
	assert.Equal(t, 120.0, st.ProteinGoal)
	assert.Equal(t, 2000.0, st.CalorieGoal)

	lang := "sinhala"
	st, err = settings.UpdateSettings(ctx, 1, SettingsPatch{Language: &lang})
	require.NoError(t, err)
	assert.Equal(t, "dark", st.Theme)
	assert.Equal(t, "sinhala", st.Language)
}

func TestIsAdmin_OnlyFromRegistration(t *testing.T) {
	settings := NewSettingsService(store.NewMemoryStore(), nil)
	ctx := context.Background()

	require.NoError(t, settings.initSettings(ctx, 1, true))
	theme := "dark"
	_, err := settings.UpdateSettings(ctx, 1, SettingsPatch{Theme: &theme})
	require.NoError(t, err)

	ok, err := settings.IsAdmin(ctx, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = settings.IsAdmin(ctx, 2)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUpdateSettings_NotificationsToggleDevices(t *testing.T) {
	repo := store.NewMemoryStore()
	sns := &fakeSNS{}
	push := NewPushService(repo, sns, "arn:aws:sns:platform/app")
	settings := NewSettingsService(repo, push)
	ctx := context.Background()

	_, err := push.RegisterDevice(ctx, 1, "android", "tok-1")
	require.NoError(t, err)

	off := false
	_, err = settings.UpdateSettings(ctx, 1, SettingsPatch{Notifications: &off})
	require.NoError(t, err)

	devices, err := repo.ListEnabledDevices(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, devices)

	on := true
	_, err = settings.UpdateSettings(ctx, 1, SettingsPatch{Notifications: &on})
	require.NoError(t, err)
	devices, err = repo.ListEnabledDevices(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, devices, 1)
}
