package service

import (
	"fmt"
	"testing"

	"github.com/clubstack/backend/internal/model"
	"github.com/clubstack/backend/internal/notify"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// recordingNotifier captures events so tests can assert who got notified.
type recordingNotifier struct {
	decided    []notify.ApplicationDecidedEvent
	invited    []notify.InvitationSentEvent
	answered   []notify.InvitationAnsweredEvent
	membership []notify.MembershipChangedEvent
}

func newRecordingNotifier() *recordingNotifier { return &recordingNotifier{} }

func (r *recordingNotifier) ApplicationDecided(ev notify.ApplicationDecidedEvent) {
	r.decided = append(r.decided, ev)
}

func (r *recordingNotifier) InvitationSent(ev notify.InvitationSentEvent) {
	r.invited = append(r.invited, ev)
}

func (r *recordingNotifier) InvitationAnswered(ev notify.InvitationAnsweredEvent) {
	r.answered = append(r.answered, ev)
}

func (r *recordingNotifier) MembershipChanged(ev notify.MembershipChangedEvent) {
	r.membership = append(r.membership, ev)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Project{},
		&model.Role{},
		&model.Application{},
		&model.Post{},
		&model.Comment{},
		&model.Like{},
		&model.Message{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string, regno int, admin, member bool) *model.User {
	t.Helper()
	u := &model.User{
		Name:         name,
		Email:        fmt.Sprintf("%s@club.test", name),
		PasswordHash: "x",
		RegNo:        regno,
		IsAdmin:      admin,
		IsMember:     member,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedProject(t *testing.T, db *gorm.DB, leadID uint, name string, durationDays int) *model.Project {
	t.Helper()
	p := &model.Project{
		Name:         name,
		DurationDays: durationDays,
		LeadID:       leadID,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}
