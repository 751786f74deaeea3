package store

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
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	return New(db)
}

var emailSeq int

func seedUser(t *testing.T, s *Store, role string) *models.User {
	t.Helper()
	emailSeq++
	user := &models.User{
		Email:        fmt.Sprintf("user%d@example.com", emailSeq),
		PasswordHash: "not-a-real-hash",
		Role:         role,
	}
	require.NoError(t, s.CreateUser(user))
	return user
}

func seedProperty(t *testing.T, s *Store, ownerID string) *models.Property {
	t.Helper()
	property := &models.Property{
		OwnerID:  &ownerID,
		Title:    "Two-bedroom condo",
		Price:    25000,
		Location: "General Santos City",
		Type:     models.PropertyCondo,
	}
	require.NoError(t, s.CreateProperty(property))
	return property
}

func seedContract(t *testing.T, s *Store, propertyID string, tenantID *string) *models.Contract {
	t.Helper()
	emailSeq++
	contract := &models.Contract{
		ContractNumber: fmt.Sprintf("CT-%08d", emailSeq),
		PropertyID:     propertyID,
		TenantID:       tenantID,
		Content:        "Standard 12-month lease",
		MonthlyRent:    25000,
	}
	require.NoError(t, s.CreateContract(contract))
	return contract
}

func TestCreateUserBootstrapsBalance(t *testing.T) {
	s := newTestStore(t)
	user := seedUser(t, s, models.RoleClient)

	balance, err := s.GetBalance(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, balance.Amount)
	assert.Equal(t, "PHP", balance.Currency)

	loaded, err := s.GetUser(user.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded.Balance)
	assert.Equal(t, models.StatusActive, loaded.Status)
}

func TestCreateUserRejectsUnknownRole(t *testing.T) {
	s := newTestStore(t)
	err := s.CreateUser(&models.User{
		Email:        "ghost@example.com",
		PasswordHash: "x",
		Role:         "superuser",
	})
	assert.ErrorIs(t, err, ErrConstraintViolation)
}

func TestDuplicateEmailIsConstraintViolation(t *testing.T) {
	s := newTestStore(t)
	user := seedUser(t, s, models.RoleClient)

	err := s.CreateUser(&models.User{
		Email:        user.Email,
		PasswordHash: "x",
		Role:         models.RoleClient,
	})
	assert.ErrorIs(t, err, ErrConstraintViolation)
}

func TestDeactivatedUserCannotLogIn(t *testing.T) {
	s := newTestStore(t)
	user := seedUser(t, s, models.RoleAgent)

	found, err := s.GetActiveUserByEmail(user.Email)
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	require.NoError(t, s.DeactivateUser(user.ID))

	_, err = s.GetActiveUserByEmail(user.Email)
	assert.ErrorIs(t, err, ErrNotFound)

	// The row itself survives deactivation.
	loaded, err := s.GetUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDeactivated, loaded.Status)
}

func TestDeactivateMissingUser(t *testing.T) {
	s := newTestStore(t)
	assert.ErrorIs(t, s.DeactivateUser("no-such-id"), ErrNotFound)
}

func TestPurgeUserNullsReferences(t *testing.T) {
	s := newTestStore(t)
	agent := seedUser(t, s, models.RoleAgent)
	tenant := seedUser(t, s, models.RoleClient)

	property := seedProperty(t, s, agent.ID)
	contract := seedContract(t, s, property.ID, &tenant.ID)

	chatroom := &models.Chatroom{Name: "lease talk"}
	require.NoError(t, s.CreateChatroom(chatroom))
	message := &models.Message{ChatroomID: chatroom.ID, SenderID: &tenant.ID, Content: "hello"}
	require.NoError(t, s.CreateMessage(message))

	require.NoError(t, s.PurgeUser(tenant.ID))

	_, err := s.GetUser(tenant.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.GetBalance(tenant.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	keptContract, err := s.GetContract(contract.ID)
	require.NoError(t, err)
	assert.Nil(t, keptContract.TenantID)

	keptMessage, err := s.GetMessage(message.ID)
	require.NoError(t, err)
	assert.Nil(t, keptMessage.SenderID)

	// Purging the agent leaves their listings ownerless.
	require.NoError(t, s.PurgeUser(agent.ID))
	keptProperty, err := s.GetProperty(property.ID)
	require.NoError(t, err)
	assert.Nil(t, keptProperty.OwnerID)
}

func TestPropertyPriceMustBePositive(t *testing.T) {
	s := newTestStore(t)
	agent := seedUser(t, s, models.RoleAgent)

	for _, price := range []float64{0, -100} {
		err := s.CreateProperty(&models.Property{
			OwnerID:  &agent.ID,
			Title:    "Freebie",
			Price:    price,
			Location: "Nowhere",
			Type:     models.PropertyLand,
		})
		assert.ErrorIs(t, err, ErrConstraintViolation, "price %v", price)
	}

	property := seedProperty(t, s, agent.ID)
	bad := -1.0
	_, err := s.UpdateProperty(property.ID, PropertyPatch{Price: &bad})
	assert.ErrorIs(t, err, ErrConstraintViolation)
}

func TestPropertyRejectsUnknownEnums(t *testing.T) {
	s := newTestStore(t)
	agent := seedUser(t, s, models.RoleAgent)

	err := s.CreateProperty(&models.Property{
		OwnerID:  &agent.ID,
		Title:    "Castle",
		Price:    1,
		Location: "Cloud",
		Type:     "castle",
	})
	assert.ErrorIs(t, err, ErrConstraintViolation)

	property := seedProperty(t, s, agent.ID)
	bad := "haunted"
	_, err = s.UpdateProperty(property.ID, PropertyPatch{Status: &bad})
	assert.ErrorIs(t, err, ErrConstraintViolation)
}

func TestDeletePropertyCascadesContracts(t *testing.T) {
	s := newTestStore(t)
	agent := seedUser(t, s, models.RoleAgent)
	tenant := seedUser(t, s, models.RoleClient)
	property := seedProperty(t, s, agent.ID)
	contract := seedContract(t, s, property.ID, &tenant.ID)

	require.NoError(t, s.DeleteProperty(property.ID))

	_, err := s.GetProperty(property.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.GetContract(contract.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestContractRequiresExistingProperty(t *testing.T) {
	s := newTestStore(t)
	err := s.CreateContract(&models.Contract{
		ContractNumber: "CT-MISSING1",
		PropertyID:     "no-such-property",
		Content:        "lease",
	})
	assert.ErrorIs(t, err, ErrConstraintViolation)
}

func TestContractStatusValidation(t *testing.T) {
	s := newTestStore(t)
	agent := seedUser(t, s, models.RoleAgent)
	property := seedProperty(t, s, agent.ID)
	contract := seedContract(t, s, property.ID, nil)
	assert.Equal(t, models.ContractPending, contract.Status)

	bad := "cancelled"
	_, err := s.UpdateContract(contract.ID, ContractPatch{Status: &bad})
	assert.ErrorIs(t, err, ErrConstraintViolation)

	active := models.ContractActive
	updated, err := s.UpdateContract(contract.ID, ContractPatch{Status: &active})
	require.NoError(t, err)
	assert.Equal(t, models.ContractActive, updated.Status)
}

func TestListContractsFiltersByTenant(t *testing.T) {
	s := newTestStore(t)
	agent := seedUser(t, s, models.RoleAgent)
	alice := seedUser(t, s, models.RoleClient)
	bob := seedUser(t, s, models.RoleClient)
	property := seedProperty(t, s, agent.ID)

	seedContract(t, s, property.ID, &alice.ID)
	seedContract(t, s, property.ID, &bob.ID)
	seedContract(t, s, property.ID, &bob.ID)

	all, err := s.ListContracts(ContractFilter{}, 0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	bobs, err := s.ListContracts(ContractFilter{TenantID: bob.ID}, 0, 0)
	require.NoError(t, err)
	assert.Len(t, bobs, 2)
}

func TestSettlePaymentCreditsBalanceOnce(t *testing.T) {
	s := newTestStore(t)
	client := seedUser(t, s, models.RoleClient)

	payment := &models.Payment{UserID: client.ID, Amount: 1500}
	require.NoError(t, s.CreatePayment(payment))
	assert.Equal(t, models.PaymentPending, payment.Status)

	settled, err := s.SettlePayment(payment.ID, true)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentCompleted, settled.Status)

	balance, err := s.GetBalance(client.ID)
	require.NoError(t, err)
	assert.Equal(t, 1500.0, balance.Amount)

	// A second settlement must not credit again.
	_, err = s.SettlePayment(payment.ID, true)
	assert.ErrorIs(t, err, ErrConstraintViolation)

	balance, err = s.GetBalance(client.ID)
	require.NoError(t, err)
	assert.Equal(t, 1500.0, balance.Amount)
}

func TestFailedSettlementLeavesBalanceAlone(t *testing.T) {
	s := newTestStore(t)
	client := seedUser(t, s, models.RoleClient)

	payment := &models.Payment{UserID: client.ID, Amount: 900}
	require.NoError(t, s.CreatePayment(payment))

	settled, err := s.SettlePayment(payment.ID, false)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentFailed, settled.Status)

	balance, err := s.GetBalance(client.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, balance.Amount)
}

func TestPaymentAmountMustBePositive(t *testing.T) {
	s := newTestStore(t)
	client := seedUser(t, s, models.RoleClient)
	err := s.CreatePayment(&models.Payment{UserID: client.ID, Amount: 0})
	assert.ErrorIs(t, err, ErrConstraintViolation)
}

func TestReactionsDedupePerUser(t *testing.T) {
	s := newTestStore(t)
	alice := seedUser(t, s, models.RoleClient)
	bob := seedUser(t, s, models.RoleClient)

	chatroom := &models.Chatroom{Name: "general"}
	require.NoError(t, s.CreateChatroom(chatroom))
	message := &models.Message{ChatroomID: chatroom.ID, SenderID: &alice.ID, Content: "new listing up"}
	require.NoError(t, s.CreateMessage(message))

	_, err := s.AddReaction(message.ID, "👍", alice.ID)
	require.NoError(t, err)
	_, err = s.AddReaction(message.ID, "👍", bob.ID)
	require.NoError(t, err)
	updated, err := s.AddReaction(message.ID, "👍", alice.ID)
	require.NoError(t, err)

	assert.Len(t, updated.Reactions["👍"], 2)

	// The stored row matches what AddReaction returned.
	loaded, err := s.GetMessage(message.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, updated.Reactions["👍"], loaded.Reactions["👍"])
}

func TestDeleteChatroomCascadesMessages(t *testing.T) {
	s := newTestStore(t)
	alice := seedUser(t, s, models.RoleClient)

	chatroom := &models.Chatroom{Name: "doomed"}
	require.NoError(t, s.CreateChatroom(chatroom))
	message := &models.Message{ChatroomID: chatroom.ID, SenderID: &alice.ID, Content: "bye"}
	require.NoError(t, s.CreateMessage(message))

	require.NoError(t, s.DeleteChatroom(chatroom.ID))

	_, err := s.GetChatroom(chatroom.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.GetMessage(message.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMessageRequiresExistingChatroom(t *testing.T) {
	s := newTestStore(t)
	err := s.CreateMessage(&models.Message{ChatroomID: "no-such-room", Content: "hello"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.ListMessages("no-such-room", 0, 0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecomputeAnalytics(t *testing.T) {
	s := newTestStore(t)
	agent := seedUser(t, s, models.RoleAgent)
	tenant := seedUser(t, s, models.RoleClient)

	propertyA := seedProperty(t, s, agent.ID)
	seedProperty(t, s, agent.ID)

	active := seedContract(t, s, propertyA.ID, &tenant.ID)
	status := models.ContractActive
	_, err := s.UpdateContract(active.ID, ContractPatch{Status: &status})
	require.NoError(t, err)
	seedContract(t, s, propertyA.ID, &tenant.ID) // stays pending

	payment := &models.Payment{UserID: tenant.ID, Amount: 2000}
	require.NoError(t, s.CreatePayment(payment))
	_, err = s.SettlePayment(payment.ID, true)
	require.NoError(t, err)
	pending := &models.Payment{UserID: tenant.ID, Amount: 999}
	require.NoError(t, s.CreatePayment(pending))

	agentStats, err := s.RecomputeAnalytics(agent.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, agentStats.TotalProperties)
	assert.Equal(t, 0, agentStats.ActiveContracts)

	tenantStats, err := s.RecomputeAnalytics(tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, tenantStats.TotalProperties)
	assert.Equal(t, 1, tenantStats.ActiveContracts)
	assert.Equal(t, 2000.0, tenantStats.TotalPayments)

	_, err = s.RecomputeAnalytics("no-such-user")
	assert.ErrorIs(t, err, ErrNotFound)

	rows, err := s.ListAnalytics(0, 0)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}
