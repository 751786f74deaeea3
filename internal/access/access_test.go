package access

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"atuna_estate/internal/config"
	"atuna_estate/internal/models"
	"atuna_estate/internal/policy"
	"atuna_estate/internal/store"
)

type fixture struct {
	svc   *Service
	store *store.Store

	admin  Actor
	agentA Actor
	agentB Actor
	client Actor
	other  Actor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	st := store.New(db)
	f := &fixture{svc: New(st), store: st}
	f.admin = f.seedActor(t, models.RoleAdmin)
	f.agentA = f.seedActor(t, models.RoleAgent)
	f.agentB = f.seedActor(t, models.RoleAgent)
	f.client = f.seedActor(t, models.RoleClient)
	f.other = f.seedActor(t, models.RoleClient)
	return f
}

var actorSeq int

func (f *fixture) seedActor(t *testing.T, role string) Actor {
	t.Helper()
	actorSeq++
	user := &models.User{
		Email:        fmt.Sprintf("actor%d@example.com", actorSeq),
		PasswordHash: "not-a-real-hash",
		Role:         role,
	}
	require.NoError(t, f.store.CreateUser(user))
	return Actor{ID: user.ID, Role: policy.Role(role)}
}

func (f *fixture) seedProperty(t *testing.T, owner Actor) *models.Property {
	t.Helper()
	property := &models.Property{
		Title:    "Seafront villa",
		Price:    90000,
		Location: "Sarangani Bay",
		Type:     models.PropertyVilla,
	}
	require.NoError(t, f.svc.CreateProperty(owner, property))
	return property
}

func (f *fixture) seedContract(t *testing.T, property *models.Property, tenant Actor) *models.Contract {
	t.Helper()
	contract := &models.Contract{
		PropertyID:  property.ID,
		TenantID:    &tenant.ID,
		Content:     "12-month lease",
		MonthlyRent: 30000,
	}
	require.NoError(t, f.svc.CreateContract(f.admin, contract))
	return contract
}

func TestAgentOwnsWhatTheyCreate(t *testing.T) {
	f := newFixture(t)
	property := f.seedProperty(t, f.agentA)
	require.NotNil(t, property.OwnerID)
	assert.Equal(t, f.agentA.ID, *property.OwnerID)
}

func TestClientCannotCreateProperty(t *testing.T) {
	f := newFixture(t)
	err := f.svc.CreateProperty(f.client, &models.Property{
		Title: "No", Price: 1, Location: "x", Type: models.PropertyLand,
	})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestPropertyUpdateRequiresOwnership(t *testing.T) {
	f := newFixture(t)
	property := f.seedProperty(t, f.agentA)

	title := "Renamed"
	_, err := f.svc.UpdateProperty(f.agentB, property.ID, store.PropertyPatch{Title: &title})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	updated, err := f.svc.UpdateProperty(f.agentA, property.ID, store.PropertyPatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)

	// Staff override ownership.
	price := 95000.0
	_, err = f.svc.UpdateProperty(f.admin, property.ID, store.PropertyPatch{Price: &price})
	assert.NoError(t, err)
}

func TestPropertyDeleteRequiresOwnership(t *testing.T) {
	f := newFixture(t)
	property := f.seedProperty(t, f.agentA)

	assert.ErrorIs(t, f.svc.DeleteProperty(f.agentB, property.ID), ErrPermissionDenied)
	assert.ErrorIs(t, f.svc.DeleteProperty(f.client, property.ID), ErrPermissionDenied)
	assert.NoError(t, f.svc.DeleteProperty(f.agentA, property.ID))
}

func TestAnyRoleCanBrowseListings(t *testing.T) {
	f := newFixture(t)
	property := f.seedProperty(t, f.agentA)

	for _, actor := range []Actor{f.admin, f.agentB, f.client} {
		got, err := f.svc.GetProperty(actor, property.ID)
		require.NoError(t, err)
		assert.Equal(t, property.ID, got.ID)
	}
}

func TestClientContractAccessIsScopedToTenancy(t *testing.T) {
	f := newFixture(t)
	property := f.seedProperty(t, f.agentA)
	mine := f.seedContract(t, property, f.client)
	theirs := f.seedContract(t, property, f.other)

	got, err := f.svc.GetContract(f.client, mine.ID)
	require.NoError(t, err)
	assert.Equal(t, mine.ID, got.ID)

	// Someone else's lease reads as missing: an existing foreign id and a
	// fabricated one yield the same error, so ids cannot be enumerated.
	_, err = f.svc.GetContract(f.client, theirs.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = f.svc.GetContract(f.client, "no-such-id")
	assert.ErrorIs(t, err, store.ErrNotFound)

	listed, err := f.svc.ListContracts(f.client, store.ContractFilter{}, 0, 0)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, mine.ID, listed[0].ID)

	// A client cannot widen the scope with an explicit filter.
	listed, err = f.svc.ListContracts(f.client, store.ContractFilter{TenantID: f.other.ID}, 0, 0)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, mine.ID, listed[0].ID)

	all, err := f.svc.ListContracts(f.admin, store.ContractFilter{}, 0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestClientCannotMutateContracts(t *testing.T) {
	f := newFixture(t)
	property := f.seedProperty(t, f.agentA)
	contract := f.seedContract(t, property, f.client)

	content := "amended"
	_, err := f.svc.UpdateContract(f.client, contract.ID, store.ContractPatch{Content: &content})
	assert.ErrorIs(t, err, ErrPermissionDenied)
	assert.ErrorIs(t, f.svc.DeleteContract(f.client, contract.ID), ErrPermissionDenied)

	err = f.svc.CreateContract(f.client, &models.Contract{PropertyID: property.ID, Content: "x"})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestContractNumberAssignedOnCreate(t *testing.T) {
	f := newFixture(t)
	property := f.seedProperty(t, f.agentA)
	contract := &models.Contract{PropertyID: property.ID, Content: "lease"}
	require.NoError(t, f.svc.CreateContract(f.agentA, contract))
	assert.NotEmpty(t, contract.ContractNumber)
}

func TestUserSelfAccess(t *testing.T) {
	f := newFixture(t)

	me, err := f.svc.GetUser(f.client, f.client.ID)
	require.NoError(t, err)
	assert.Equal(t, f.client.ID, me.ID)

	_, err = f.svc.GetUser(f.client, f.other.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = f.svc.GetUser(f.admin, f.client.ID)
	assert.NoError(t, err)

	_, err = f.svc.ListUsers(f.client, 0, 0)
	assert.ErrorIs(t, err, ErrPermissionDenied)
	users, err := f.svc.ListUsers(f.admin, 0, 0)
	require.NoError(t, err)
	assert.Len(t, users, 5)
}

func TestUserDeleteDeactivates(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.svc.DeleteUser(f.client, f.client.ID))
	user, err := f.store.GetUser(f.client.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDeactivated, user.Status)

	assert.ErrorIs(t, f.svc.DeleteUser(f.other, f.agentA.ID), ErrPermissionDenied)
}

func TestPurgeUserIsStaffOnly(t *testing.T) {
	f := newFixture(t)

	// Self relationship does not unlock a purge.
	assert.ErrorIs(t, f.svc.PurgeUser(f.client, f.client.ID), ErrPermissionDenied)

	require.NoError(t, f.svc.PurgeUser(f.admin, f.other.ID))
	_, err := f.store.GetUser(f.other.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStaffOnlyUserCreation(t *testing.T) {
	f := newFixture(t)

	err := f.svc.CreateUser(f.agentA, &models.User{
		Email: "new@example.com", PasswordHash: "x", Role: models.RoleClient,
	})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	err = f.svc.CreateUser(f.admin, &models.User{
		Email: "staffmade@example.com", PasswordHash: "x", Role: models.RoleSubAdmin,
	})
	assert.NoError(t, err)
}

func TestBalanceVisibility(t *testing.T) {
	f := newFixture(t)

	balance, err := f.svc.GetBalance(f.client, f.client.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, balance.Amount)

	_, err = f.svc.GetBalance(f.client, f.other.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = f.svc.GetBalance(f.admin, f.client.ID)
	assert.NoError(t, err)
}

func TestPaymentsAreAlwaysOwn(t *testing.T) {
	f := newFixture(t)

	payment := &models.Payment{Amount: 500}
	require.NoError(t, f.svc.CreatePayment(f.client, payment))
	assert.Equal(t, f.client.ID, payment.UserID)

	got, err := f.svc.GetPayment(f.client, payment.ID)
	require.NoError(t, err)
	assert.Equal(t, payment.ID, got.ID)

	// A foreign payment reads as missing, exactly like a fabricated id.
	_, err = f.svc.GetPayment(f.other, payment.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = f.svc.GetPayment(f.other, "no-such-id")
	assert.ErrorIs(t, err, store.ErrNotFound)

	// An empty user filter means "mine"; pointing it at someone else is
	// denied for non-staff.
	own, err := f.svc.ListPayments(f.client, "", 0, 0)
	require.NoError(t, err)
	assert.Len(t, own, 1)

	_, err = f.svc.ListPayments(f.other, f.client.ID, 0, 0)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	all, err := f.svc.ListPayments(f.admin, f.client.ID, 0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSettlementIsBackOfficeOnly(t *testing.T) {
	f := newFixture(t)

	payment := &models.Payment{Amount: 500}
	require.NoError(t, f.svc.CreatePayment(f.client, payment))

	_, err := f.svc.SettlePayment(f.client, payment.ID, true)
	assert.ErrorIs(t, err, ErrPermissionDenied)
	_, err = f.svc.SettlePayment(f.agentA, payment.ID, true)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	settled, err := f.svc.SettlePayment(f.admin, payment.ID, true)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentCompleted, settled.Status)
}

func TestChatMessageLifecycle(t *testing.T) {
	f := newFixture(t)

	chatroom := &models.Chatroom{Name: "viewings"}
	require.NoError(t, f.svc.CreateChatroom(f.client, chatroom))

	message := &models.Message{ChatroomID: chatroom.ID, Content: "is the condo still free?"}
	require.NoError(t, f.svc.CreateMessage(f.client, message))
	require.NotNil(t, message.SenderID)
	assert.Equal(t, f.client.ID, *message.SenderID)

	// Anyone in the room can react; repeating is a no-op.
	_, err := f.svc.AddReaction(f.other, message.ID, "👍")
	require.NoError(t, err)
	reacted, err := f.svc.AddReaction(f.other, message.ID, "👍")
	require.NoError(t, err)
	assert.Len(t, reacted.Reactions["👍"], 1)

	// Only the sender or staff may delete.
	assert.ErrorIs(t, f.svc.DeleteMessage(f.other, message.ID), ErrPermissionDenied)
	require.NoError(t, f.svc.DeleteMessage(f.client, message.ID))

	second := &models.Message{ChatroomID: chatroom.ID, Content: "moderated away"}
	require.NoError(t, f.svc.CreateMessage(f.other, second))
	require.NoError(t, f.svc.DeleteMessage(f.admin, second.ID))

	// Chatroom deletion is staff-only.
	assert.ErrorIs(t, f.svc.DeleteChatroom(f.client, chatroom.ID), ErrPermissionDenied)
	require.NoError(t, f.svc.DeleteChatroom(f.admin, chatroom.ID))
}

func TestAnalyticsAreStaffOnly(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.GetAnalytics(f.client, f.client.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)
	_, err = f.svc.ListAnalytics(f.agentA, 0, 0)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	stats, err := f.svc.GetAnalytics(f.admin, f.agentA.ID)
	require.NoError(t, err)
	assert.Equal(t, f.agentA.ID, stats.UserID)
}

func TestAuthorizePropertyUpdateDoesNotMutate(t *testing.T) {
	f := newFixture(t)
	property := f.seedProperty(t, f.agentA)

	_, err := f.svc.AuthorizePropertyUpdate(f.agentB, property.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	loaded, err := f.svc.AuthorizePropertyUpdate(f.agentA, property.ID)
	require.NoError(t, err)
	assert.Equal(t, property.Title, loaded.Title)

	// A missing id surfaces as not found only to callers who could update
	// some property at all.
	_, err = f.svc.AuthorizePropertyUpdate(f.admin, "no-such-id")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = f.svc.AuthorizePropertyUpdate(f.client, "no-such-id")
	assert.ErrorIs(t, err, ErrPermissionDenied)
}
