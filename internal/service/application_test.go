package service

import (
	"errors"
	"testing"

	"github.com/clubstack/backend/internal/authz"
	"github.com/clubstack/backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestApplicationVisibility(t *testing.T) {
	db := newTestDB(t)
	svc := NewApplicationService(db)

	alice := seedUser(t, db, "alice", 1001, false, false)
	bob := seedUser(t, db, "bob", 1002, false, true)
	admin := seedUser(t, db, "root", 1003, true, true)

	_, err := svc.Apply(authz.FromUser(alice), ApplyInput{Type: model.ApplicationTypeMembership, Subject: "let me in"})
	require.NoError(t, err)
	_, err = svc.Apply(authz.FromUser(bob), ApplyInput{Type: model.ApplicationTypeDutyLeave, Subject: "DL for hackathon"})
	require.NoError(t, err)

	own, err := svc.List(authz.FromUser(alice))
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, alice.ID, own[0].AuthorID)

	all, err := svc.List(authz.FromUser(admin))
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestApplyValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewApplicationService(db)
	alice := seedUser(t, db, "alice", 1001, false, false)
	p := authz.FromUser(alice)

	_, err := svc.Apply(p, ApplyInput{Type: "NONSENSE", Subject: "x"})
	require.Error(t, err)

	_, err = svc.Apply(p, ApplyInput{Type: model.ApplicationTypeQuery, Subject: ""})
	require.Error(t, err)

	missing := uint(999)
	_, err = svc.Apply(p, ApplyInput{Type: model.ApplicationTypeComponent, Subject: "need a sensor", ProjectID: &missing})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Project not found")
}

func TestDecideApplication(t *testing.T) {
	db := newTestDB(t)
	svc := NewApplicationService(db)
	rec := newRecordingNotifier()
	svc.SetNotifier(rec)

	alice := seedUser(t, db, "alice", 1001, false, false)
	admin := seedUser(t, db, "root", 1002, true, true)

	app, err := svc.Apply(authz.FromUser(alice), ApplyInput{Type: model.ApplicationTypeMembership, Subject: "join"})
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationPending, app.Status)

	// Non-admin cannot decide.
	_, err = svc.Decide(authz.FromUser(alice), app.ID, true)
	require.Error(t, err)

	decided, err := svc.Decide(authz.FromUser(admin), app.ID, true)
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationApproved, decided.Status)

	// Approved membership application flips the member flag.
	var fromDB model.User
	require.NoError(t, db.First(&fromDB, alice.ID).Error)
	assert.True(t, fromDB.IsMember)

	require.Len(t, rec.decided, 1)
	assert.Equal(t, alice.ID, rec.decided[0].AuthorID)

	// Already decided.
	_, err = svc.Decide(authz.FromUser(admin), app.ID, false)
	require.Error(t, err)
}

func TestDecideRollsBackOnMemberFlipFailure(t *testing.T) {
	db := newTestDB(t)
	svc := NewApplicationService(db)

	alice := seedUser(t, db, "alice", 1001, false, false)
	admin := seedUser(t, db, "root", 1002, true, true)

	app, err := svc.Apply(authz.FromUser(alice), ApplyInput{Type: model.ApplicationTypeMembership, Subject: "join"})
	require.NoError(t, err)

	// Fault injection: fail any update against the users table, so the
	// member-flag flip errors after the status update succeeded.
	require.NoError(t, db.Callback().Update().Before("gorm:update").Register("fail_users", func(tx *gorm.DB) {
		if tx.Statement.Schema != nil && tx.Statement.Schema.Table == "users" {
			tx.AddError(errors.New("injected storage fault"))
		}
	}))
	defer db.Callback().Update().Remove("fail_users")

	_, err = svc.Decide(authz.FromUser(admin), app.ID, true)
	require.Error(t, err)

	// Neither half of the decision may stick.
	var fromDB model.Application
	require.NoError(t, db.First(&fromDB, app.ID).Error)
	assert.Equal(t, model.ApplicationPending, fromDB.Status)

	var author model.User
	require.NoError(t, db.First(&author, alice.ID).Error)
	assert.False(t, author.IsMember)
}
