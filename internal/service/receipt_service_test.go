package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/sharezin/internal/models"
	"github.com/mmynk/sharezin/internal/plan"
	"github.com/mmynk/sharezin/pkg/api"
)

func createReceipt(t *testing.T, u *testUser, title string, serviceCharge, cover float64) *api.Receipt {
	t.Helper()
	resp, err := u.receipts.CreateReceipt.CallUnary(context.Background(), connect.NewRequest(&api.CreateReceiptRequest{
		Title:                title,
		ServiceChargePercent: serviceCharge,
		Cover:                cover,
	}))
	require.NoError(t, err)
	return resp.Msg.Receipt
}

func getReceipt(t *testing.T, u *testUser, id string) *api.Receipt {
	t.Helper()
	resp, err := u.receipts.GetReceipt.CallUnary(context.Background(), connect.NewRequest(&api.GetReceiptRequest{ReceiptID: id}))
	require.NoError(t, err)
	return resp.Msg.Receipt
}

// join has u join r through its invite code and the creator approve the request.
func join(t *testing.T, creator, u *testUser, r *api.Receipt) *api.Receipt {
	t.Helper()
	ctx := context.Background()

	_, err := u.receipts.JoinReceipt.CallUnary(ctx, connect.NewRequest(&api.JoinReceiptRequest{InviteCode: strings.ToLower(r.InviteCode)}))
	require.NoError(t, err)

	pending := getReceipt(t, creator, r.ID).PendingParticipants
	require.Len(t, pending, 1)
	resp, err := creator.receipts.ApproveJoin.CallUnary(ctx, connect.NewRequest(&api.DecisionRequest{ReceiptID: r.ID, RequestID: pending[0].ID}))
	require.NoError(t, err)
	return resp.Msg.Receipt
}

func participantOf(t *testing.T, r *api.Receipt, userID string) api.Participant {
	t.Helper()
	for _, p := range r.Participants {
		if p.UserID == userID {
			return p
		}
	}
	t.Fatalf("user %s is not a participant of %s", userID, r.ID)
	return api.Participant{}
}

func notificationTypes(t *testing.T, u *testUser) []string {
	t.Helper()
	resp, err := u.notifications.ListNotifications.CallUnary(context.Background(), connect.NewRequest(&api.ListNotificationsRequest{}))
	require.NoError(t, err)
	var types []string
	for _, n := range resp.Msg.Notifications {
		types = append(types, n.Type)
	}
	return types
}

func TestReceiptFlow(t *testing.T) {
	env := setupTestServer(t, plan.Limits{})
	ctx := context.Background()
	carla := env.register(t, "Carla")
	alice := env.register(t, "Alice")

	r := createReceipt(t, carla, "Dinner", 10, 30)
	assert.Len(t, r.InviteCode, 6)
	require.Len(t, r.Participants, 1)
	assert.Equal(t, carla.ID, r.Participants[0].UserID)
	assert.Equal(t, carla.ID, r.CreatorID)

	preview, err := alice.receipts.GetReceiptByInviteCode.CallUnary(ctx, connect.NewRequest(&api.GetReceiptByInviteCodeRequest{
		InviteCode: " " + strings.ToLower(r.InviteCode),
	}))
	require.NoError(t, err)
	assert.Equal(t, "Dinner", preview.Msg.Receipt.Title)
	assert.Equal(t, 1, preview.Msg.Receipt.ParticipantCount)

	r = join(t, carla, alice, r)
	require.Len(t, r.Participants, 2)
	assert.Empty(t, r.PendingParticipants)
	assert.Contains(t, notificationTypes(t, carla), string(models.NotificationParticipantRequest))
	assert.Contains(t, notificationTypes(t, alice), string(models.NotificationParticipantApproved))

	_, err = alice.receipts.AddItem.CallUnary(ctx, connect.NewRequest(&api.AddItemRequest{ReceiptID: r.ID, Name: "Pasta", Quantity: 1, Price: 40}))
	require.NoError(t, err)
	resp, err := carla.receipts.AddItem.CallUnary(ctx, connect.NewRequest(&api.AddItemRequest{ReceiptID: r.ID, Name: "Steak", Quantity: 2, Price: 30}))
	require.NoError(t, err)
	assert.Equal(t, 140.0, resp.Msg.Receipt.Total)
	assert.Contains(t, notificationTypes(t, carla), string(models.NotificationItemAdded))

	summary, err := alice.receipts.GetSummary.CallUnary(ctx, connect.NewRequest(&api.GetSummaryRequest{ReceiptID: r.ID}))
	require.NoError(t, err)
	s := summary.Msg.Summary
	assert.Equal(t, 100.0, s.ItemsTotal)
	assert.Equal(t, 10.0, s.ServiceCharge)
	assert.Equal(t, 140.0, s.Total)
	require.Len(t, s.Shares, 2)
	assert.Equal(t, api.Share{ParticipantID: s.Shares[0].ParticipantID, Name: "Carla", Subtotal: 60, ServiceCharge: 6, Cover: 15, Total: 81}, s.Shares[0])
	assert.Equal(t, api.Share{ParticipantID: s.Shares[1].ParticipantID, Name: "Alice", Subtotal: 40, ServiceCharge: 4, Cover: 15, Total: 59}, s.Shares[1])

	// Alice asks for her item to be removed; Carla approves.
	pasta := resp.Msg.Receipt.Items[0]
	require.Equal(t, "Pasta", pasta.Name)
	_, err = alice.receipts.RequestDeletion.CallUnary(ctx, connect.NewRequest(&api.RequestDeletionRequest{ReceiptID: r.ID, ItemID: pasta.ID}))
	require.NoError(t, err)
	_, err = alice.receipts.RequestDeletion.CallUnary(ctx, connect.NewRequest(&api.RequestDeletionRequest{ReceiptID: r.ID, ItemID: pasta.ID}))
	assertCode(t, err, connect.CodeFailedPrecondition)

	requests := getReceipt(t, carla, r.ID).DeletionRequests
	require.Len(t, requests, 1)
	resp, err = carla.receipts.ApproveDeletion.CallUnary(ctx, connect.NewRequest(&api.DecisionRequest{ReceiptID: r.ID, RequestID: requests[0].ID}))
	require.NoError(t, err)
	assert.Len(t, resp.Msg.Receipt.Items, 1)
	assert.Empty(t, resp.Msg.Receipt.DeletionRequests)
	assert.Equal(t, 96.0, resp.Msg.Receipt.Total)
	assert.Contains(t, notificationTypes(t, alice), string(models.NotificationDeletionApproved))

	resp, err = carla.receipts.CloseReceipt.CallUnary(ctx, connect.NewRequest(&api.CloseReceiptRequest{ReceiptID: r.ID}))
	require.NoError(t, err)
	assert.True(t, resp.Msg.Receipt.IsClosed)
	assert.Contains(t, notificationTypes(t, alice), string(models.NotificationReceiptClosed))
	assert.NotContains(t, notificationTypes(t, carla), string(models.NotificationReceiptClosed))

	_, err = alice.receipts.AddItem.CallUnary(ctx, connect.NewRequest(&api.AddItemRequest{ReceiptID: r.ID, Name: "Wine", Quantity: 1, Price: 20}))
	assertCode(t, err, connect.CodeFailedPrecondition)
	_, err = carla.receipts.CloseReceipt.CallUnary(ctx, connect.NewRequest(&api.CloseReceiptRequest{ReceiptID: r.ID}))
	assertCode(t, err, connect.CodeFailedPrecondition)
}

func TestReceiptErrors(t *testing.T) {
	env := setupTestServer(t, plan.Limits{})
	ctx := context.Background()
	carla := env.register(t, "Carla")
	alice := env.register(t, "Alice")
	mallory := env.register(t, "Mallory")

	r := createReceipt(t, carla, "Lunch", 0, 0)
	r = join(t, carla, alice, r)
	aliceID := participantOf(t, r, alice.ID).ID

	tests := []struct {
		name string
		call func() error
		code connect.Code
	}{
		{"missing title", func() error {
			_, err := carla.receipts.CreateReceipt.CallUnary(ctx, connect.NewRequest(&api.CreateReceiptRequest{}))
			return err
		}, connect.CodeInvalidArgument},
		{"service charge over 100", func() error {
			_, err := carla.receipts.CreateReceipt.CallUnary(ctx, connect.NewRequest(&api.CreateReceiptRequest{Title: "x", ServiceChargePercent: 120}))
			return err
		}, connect.CodeInvalidArgument},
		{"non member read", func() error {
			_, err := mallory.receipts.GetReceipt.CallUnary(ctx, connect.NewRequest(&api.GetReceiptRequest{ReceiptID: r.ID}))
			return err
		}, connect.CodePermissionDenied},
		{"non member summary", func() error {
			_, err := mallory.receipts.GetSummary.CallUnary(ctx, connect.NewRequest(&api.GetSummaryRequest{ReceiptID: r.ID}))
			return err
		}, connect.CodePermissionDenied},
		{"unknown receipt", func() error {
			_, err := carla.receipts.GetReceipt.CallUnary(ctx, connect.NewRequest(&api.GetReceiptRequest{ReceiptID: "missing"}))
			return err
		}, connect.CodeNotFound},
		{"unknown invite code", func() error {
			_, err := alice.receipts.JoinReceipt.CallUnary(ctx, connect.NewRequest(&api.JoinReceiptRequest{InviteCode: "ZZZZZZ"}))
			return err
		}, connect.CodeNotFound},
		{"empty invite code", func() error {
			_, err := alice.receipts.GetReceiptByInviteCode.CallUnary(ctx, connect.NewRequest(&api.GetReceiptByInviteCodeRequest{}))
			return err
		}, connect.CodeInvalidArgument},
		{"participant closes receipt", func() error {
			_, err := alice.receipts.CloseReceipt.CallUnary(ctx, connect.NewRequest(&api.CloseReceiptRequest{ReceiptID: r.ID}))
			return err
		}, connect.CodePermissionDenied},
		{"already participant joins", func() error {
			_, err := alice.receipts.JoinReceipt.CallUnary(ctx, connect.NewRequest(&api.JoinReceiptRequest{InviteCode: r.InviteCode}))
			return err
		}, connect.CodeFailedPrecondition},
		{"creator joins", func() error {
			_, err := carla.receipts.JoinReceipt.CallUnary(ctx, connect.NewRequest(&api.JoinReceiptRequest{InviteCode: r.InviteCode}))
			return err
		}, connect.CodeFailedPrecondition},
		{"participant removes participant", func() error {
			_, err := alice.receipts.RemoveParticipant.CallUnary(ctx, connect.NewRequest(&api.ParticipantRequest{ReceiptID: r.ID, ParticipantID: aliceID}))
			return err
		}, connect.CodePermissionDenied},
		{"outsider adds item", func() error {
			_, err := mallory.receipts.AddItem.CallUnary(ctx, connect.NewRequest(&api.AddItemRequest{ReceiptID: r.ID, Name: "x", Quantity: 1, Price: 1}))
			return err
		}, connect.CodePermissionDenied},
		{"zero quantity", func() error {
			_, err := alice.receipts.AddItem.CallUnary(ctx, connect.NewRequest(&api.AddItemRequest{ReceiptID: r.ID, Name: "x", Quantity: 0, Price: 1}))
			return err
		}, connect.CodeInvalidArgument},
		{"unknown join request", func() error {
			_, err := carla.receipts.ApproveJoin.CallUnary(ctx, connect.NewRequest(&api.DecisionRequest{ReceiptID: r.ID, RequestID: "nope"}))
			return err
		}, connect.CodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertCode(t, tt.call(), tt.code)
		})
	}

	anon := api.NewReceiptServiceClient(env.server.Client(), env.server.URL)
	_, err := anon.GetReceipt.CallUnary(ctx, connect.NewRequest(&api.GetReceiptRequest{ReceiptID: r.ID}))
	assertCode(t, err, connect.CodeUnauthenticated)
}

func TestParticipantLifecycle(t *testing.T) {
	env := setupTestServer(t, plan.Limits{})
	ctx := context.Background()
	carla := env.register(t, "Carla")
	alice := env.register(t, "Alice")
	bob := env.register(t, "Bob")

	r := createReceipt(t, carla, "Trip", 0, 20)
	r = join(t, carla, alice, r)

	resp, err := carla.receipts.AddParticipant.CallUnary(ctx, connect.NewRequest(&api.AddParticipantRequest{ReceiptID: r.ID, Name: "Bob", UserID: bob.ID}))
	require.NoError(t, err)
	require.Len(t, resp.Msg.Receipt.Participants, 3)
	_, err = carla.receipts.AddParticipant.CallUnary(ctx, connect.NewRequest(&api.AddParticipantRequest{ReceiptID: r.ID, Name: "Bob", UserID: bob.ID}))
	assertCode(t, err, connect.CodeFailedPrecondition)

	aliceP := participantOf(t, resp.Msg.Receipt, alice.ID)
	_, err = alice.receipts.AddItem.CallUnary(ctx, connect.NewRequest(&api.AddItemRequest{ReceiptID: r.ID, Name: "Taxi", Quantity: 1, Price: 12}))
	require.NoError(t, err)

	_, err = alice.receipts.CloseParticipant.CallUnary(ctx, connect.NewRequest(&api.ParticipantRequest{ReceiptID: r.ID, ParticipantID: aliceP.ID}))
	require.NoError(t, err)
	_, err = alice.receipts.AddItem.CallUnary(ctx, connect.NewRequest(&api.AddItemRequest{ReceiptID: r.ID, Name: "Snack", Quantity: 1, Price: 3}))
	assertCode(t, err, connect.CodeFailedPrecondition)

	// The creator can still add for a closed participant.
	_, err = carla.receipts.AddItem.CallUnary(ctx, connect.NewRequest(&api.AddItemRequest{ReceiptID: r.ID, Name: "Snack", Quantity: 1, Price: 3, ParticipantID: aliceP.ID}))
	require.NoError(t, err)

	// Removing Alice takes her items with her; the cover is split over the rest.
	resp, err = carla.receipts.RemoveParticipant.CallUnary(ctx, connect.NewRequest(&api.ParticipantRequest{ReceiptID: r.ID, ParticipantID: aliceP.ID}))
	require.NoError(t, err)
	assert.Len(t, resp.Msg.Receipt.Participants, 2)
	assert.Empty(t, resp.Msg.Receipt.Items)
	assert.Equal(t, 20.0, resp.Msg.Receipt.Total)

	_, err = alice.receipts.GetReceipt.CallUnary(ctx, connect.NewRequest(&api.GetReceiptRequest{ReceiptID: r.ID}))
	assertCode(t, err, connect.CodePermissionDenied)

	// Carla hands the receipt over to Bob.
	bobP := participantOf(t, resp.Msg.Receipt, bob.ID)
	resp, err = carla.receipts.TransferCreator.CallUnary(ctx, connect.NewRequest(&api.ParticipantRequest{ReceiptID: r.ID, ParticipantID: bobP.ID}))
	require.NoError(t, err)
	assert.Equal(t, bob.ID, resp.Msg.Receipt.CreatorID)
	assert.Contains(t, notificationTypes(t, bob), string(models.NotificationCreatorTransferred))
	assert.Contains(t, notificationTypes(t, carla), string(models.NotificationCreatorTransferredFrom))

	_, err = carla.receipts.CloseReceipt.CallUnary(ctx, connect.NewRequest(&api.CloseReceiptRequest{ReceiptID: r.ID}))
	assertCode(t, err, connect.CodePermissionDenied)
	_, err = bob.receipts.CloseReceipt.CallUnary(ctx, connect.NewRequest(&api.CloseReceiptRequest{ReceiptID: r.ID}))
	require.NoError(t, err)
}

func TestAddParticipant_UnknownAccount(t *testing.T) {
	env := setupTestServer(t, plan.Limits{})
	ctx := context.Background()
	carla := env.register(t, "Carla")
	alice := env.register(t, "Alice")

	r := createReceipt(t, carla, "Picnic", 0, 0)
	_, err := carla.receipts.AddParticipant.CallUnary(ctx, connect.NewRequest(&api.AddParticipantRequest{ReceiptID: r.ID, Name: "Ghost", UserID: "no-such-account"}))
	assertCode(t, err, connect.CodeInvalidArgument)

	r = getReceipt(t, carla, r.ID)
	assert.Len(t, r.Participants, 1)
	assert.Equal(t, carla.ID, r.CreatorID)

	// A known account may be added without a name.
	resp, err := carla.receipts.AddParticipant.CallUnary(ctx, connect.NewRequest(&api.AddParticipantRequest{ReceiptID: r.ID, UserID: alice.ID}))
	require.NoError(t, err)
	aliceP := participantOf(t, resp.Msg.Receipt, alice.ID)
	assert.Equal(t, "Alice", aliceP.Name)

	resp, err = carla.receipts.TransferCreator.CallUnary(ctx, connect.NewRequest(&api.ParticipantRequest{ReceiptID: r.ID, ParticipantID: aliceP.ID}))
	require.NoError(t, err)
	assert.Equal(t, alice.ID, resp.Msg.Receipt.CreatorID)
}

func TestRejections(t *testing.T) {
	env := setupTestServer(t, plan.Limits{})
	ctx := context.Background()
	carla := env.register(t, "Carla")
	alice := env.register(t, "Alice")

	r := createReceipt(t, carla, "Brunch", 0, 0)
	_, err := alice.receipts.JoinReceipt.CallUnary(ctx, connect.NewRequest(&api.JoinReceiptRequest{InviteCode: r.InviteCode}))
	require.NoError(t, err)
	_, err = alice.receipts.JoinReceipt.CallUnary(ctx, connect.NewRequest(&api.JoinReceiptRequest{InviteCode: r.InviteCode}))
	assertCode(t, err, connect.CodeFailedPrecondition)

	pending := getReceipt(t, carla, r.ID).PendingParticipants
	require.Len(t, pending, 1)
	_, err = alice.receipts.RejectJoin.CallUnary(ctx, connect.NewRequest(&api.DecisionRequest{ReceiptID: r.ID, RequestID: pending[0].ID}))
	assertCode(t, err, connect.CodePermissionDenied)
	resp, err := carla.receipts.RejectJoin.CallUnary(ctx, connect.NewRequest(&api.DecisionRequest{ReceiptID: r.ID, RequestID: pending[0].ID}))
	require.NoError(t, err)
	assert.Empty(t, resp.Msg.Receipt.PendingParticipants)
	assert.Contains(t, notificationTypes(t, alice), string(models.NotificationParticipantRejected))

	r = join(t, carla, alice, r)
	item, err := alice.receipts.AddItem.CallUnary(ctx, connect.NewRequest(&api.AddItemRequest{ReceiptID: r.ID, Name: "Eggs", Quantity: 1, Price: 9}))
	require.NoError(t, err)
	itemID := item.Msg.Receipt.Items[0].ID

	_, err = alice.receipts.RequestDeletion.CallUnary(ctx, connect.NewRequest(&api.RequestDeletionRequest{ReceiptID: r.ID, ItemID: itemID}))
	require.NoError(t, err)
	requests := getReceipt(t, carla, r.ID).DeletionRequests
	require.Len(t, requests, 1)

	resp, err = carla.receipts.RejectDeletion.CallUnary(ctx, connect.NewRequest(&api.DecisionRequest{ReceiptID: r.ID, RequestID: requests[0].ID}))
	require.NoError(t, err)
	assert.Len(t, resp.Msg.Receipt.Items, 1)
	assert.Empty(t, resp.Msg.Receipt.DeletionRequests)
	assert.Contains(t, notificationTypes(t, alice), string(models.NotificationDeletionRejected))

	// Direct delete by the creator.
	resp, err = carla.receipts.DeleteItem.CallUnary(ctx, connect.NewRequest(&api.DeleteItemRequest{ReceiptID: r.ID, ItemID: itemID}))
	require.NoError(t, err)
	assert.Empty(t, resp.Msg.Receipt.Items)
	_, err = alice.receipts.DeleteItem.CallUnary(ctx, connect.NewRequest(&api.DeleteItemRequest{ReceiptID: r.ID, ItemID: itemID}))
	assertCode(t, err, connect.CodePermissionDenied)
}

func TestPlanLimits(t *testing.T) {
	env := setupTestServer(t, plan.Limits{MaxReceipts: 1, MaxParticipants: 2, MaxHistoryReceipts: 1})
	ctx := context.Background()
	carla := env.register(t, "Carla")

	first := createReceipt(t, carla, "First", 0, 0)
	_, err := carla.receipts.CreateReceipt.CallUnary(ctx, connect.NewRequest(&api.CreateReceiptRequest{Title: "Second"}))
	assertCode(t, err, connect.CodeResourceExhausted)

	_, err = carla.receipts.AddParticipant.CallUnary(ctx, connect.NewRequest(&api.AddParticipantRequest{ReceiptID: first.ID, Name: "Guest"}))
	require.NoError(t, err)
	_, err = carla.receipts.AddParticipant.CallUnary(ctx, connect.NewRequest(&api.AddParticipantRequest{ReceiptID: first.ID, Name: "Another"}))
	assertCode(t, err, connect.CodeResourceExhausted)

	// Only open receipts count against the receipt limit.
	_, err = carla.receipts.CloseReceipt.CallUnary(ctx, connect.NewRequest(&api.CloseReceiptRequest{ReceiptID: first.ID}))
	require.NoError(t, err)
	second := createReceipt(t, carla, "Second", 0, 0)

	list, err := carla.receipts.ListReceipts.CallUnary(ctx, connect.NewRequest(&api.ListReceiptsRequest{}))
	require.NoError(t, err)
	assert.False(t, list.Msg.HistoryTruncated, "one closed receipt is within a history limit of one")
	assert.Len(t, list.Msg.Receipts, 2)

	_, err = carla.receipts.CloseReceipt.CallUnary(ctx, connect.NewRequest(&api.CloseReceiptRequest{ReceiptID: second.ID}))
	require.NoError(t, err)
	list, err = carla.receipts.ListReceipts.CallUnary(ctx, connect.NewRequest(&api.ListReceiptsRequest{}))
	require.NoError(t, err)
	assert.True(t, list.Msg.HistoryTruncated)
	assert.Len(t, list.Msg.Receipts, 1)
}

func TestApplyGroup(t *testing.T) {
	env := setupTestServer(t, plan.Limits{})
	ctx := context.Background()
	carla := env.register(t, "Carla")
	alice := env.register(t, "Alice")
	bob := env.register(t, "Bob")

	group, err := carla.groups.CreateGroup.CallUnary(ctx, connect.NewRequest(&api.CreateGroupRequest{
		Name:    "Flat",
		Members: []api.GroupMember{{UserID: alice.ID}, {Name: "Dan"}, {UserID: carla.ID, Name: "Carla"}},
	}))
	require.NoError(t, err)
	assert.Equal(t, "Alice", group.Msg.Group.Members[0].Name)

	r := createReceipt(t, carla, "Groceries", 0, 0)
	_, err = alice.receipts.JoinReceipt.CallUnary(ctx, connect.NewRequest(&api.JoinReceiptRequest{InviteCode: r.InviteCode}))
	require.NoError(t, err)

	resp, err := carla.receipts.ApplyGroup.CallUnary(ctx, connect.NewRequest(&api.ApplyGroupRequest{ReceiptID: r.ID, GroupID: group.Msg.Group.ID}))
	require.NoError(t, err)
	assert.Len(t, resp.Msg.Receipt.Participants, 3)
	assert.Empty(t, resp.Msg.Receipt.PendingParticipants, "adding Alice resolves her join request")

	resp, err = carla.receipts.ApplyGroup.CallUnary(ctx, connect.NewRequest(&api.ApplyGroupRequest{ReceiptID: r.ID, GroupID: group.Msg.Group.ID}))
	require.NoError(t, err)
	assert.Len(t, resp.Msg.Receipt.Participants, 3, "applying twice adds nobody")

	_, err = bob.receipts.ApplyGroup.CallUnary(ctx, connect.NewRequest(&api.ApplyGroupRequest{ReceiptID: r.ID, GroupID: group.Msg.Group.ID}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestConcurrentItems(t *testing.T) {
	env := setupTestServer(t, plan.Limits{})
	ctx := context.Background()
	carla := env.register(t, "Carla")
	r := createReceipt(t, carla, "Party", 0, 0)

	const writers = 4
	var wg sync.WaitGroup
	var mu sync.Mutex
	added := 0
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := carla.receipts.AddItem.CallUnary(ctx, connect.NewRequest(&api.AddItemRequest{ReceiptID: r.ID, Name: "Drink", Quantity: 1, Price: 5}))
			if err == nil {
				mu.Lock()
				added++
				mu.Unlock()
				return
			}
			assert.Equal(t, connect.CodeAborted, connect.CodeOf(err))
		}()
	}
	wg.Wait()

	final := getReceipt(t, carla, r.ID)
	assert.Len(t, final.Items, added, "no write is lost")
	assert.Equal(t, float64(5*added), final.Total)
	assert.Positive(t, added)
}

func TestSubscribe(t *testing.T) {
	env := setupTestServer(t, plan.Limits{})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	carla := env.register(t, "Carla")
	alice := env.register(t, "Alice")

	r := createReceipt(t, carla, "Movie", 0, 0)

	stream, err := carla.notifications.Subscribe.CallServerStream(ctx, connect.NewRequest(&api.SubscribeRequest{}))
	require.NoError(t, err)
	defer stream.Close()

	require.Eventually(t, func() bool { return env.hub.Subscribers(carla.ID) == 1 }, 2*time.Second, 10*time.Millisecond)

	_, err = alice.receipts.JoinReceipt.CallUnary(ctx, connect.NewRequest(&api.JoinReceiptRequest{InviteCode: r.InviteCode}))
	require.NoError(t, err)

	require.True(t, stream.Receive(), "stream ended: %v", stream.Err())
	msg := stream.Msg()
	assert.Equal(t, string(models.NotificationParticipantRequest), msg.Type)
	assert.Equal(t, r.ID, msg.ReceiptID)
	assert.Equal(t, alice.ID, msg.RelatedUserID)
}

func TestNotificationsMarkRead(t *testing.T) {
	env := setupTestServer(t, plan.Limits{})
	ctx := context.Background()
	carla := env.register(t, "Carla")
	alice := env.register(t, "Alice")

	r := createReceipt(t, carla, "Coffee", 0, 0)
	_, err := alice.receipts.JoinReceipt.CallUnary(ctx, connect.NewRequest(&api.JoinReceiptRequest{InviteCode: r.InviteCode}))
	require.NoError(t, err)

	list, err := carla.notifications.ListNotifications.CallUnary(ctx, connect.NewRequest(&api.ListNotificationsRequest{UnreadOnly: true}))
	require.NoError(t, err)
	require.Len(t, list.Msg.Notifications, 1)
	id := list.Msg.Notifications[0].ID

	_, err = alice.notifications.MarkNotificationRead.CallUnary(ctx, connect.NewRequest(&api.MarkNotificationReadRequest{NotificationID: id}))
	assertCode(t, err, connect.CodeNotFound)

	_, err = carla.notifications.MarkNotificationRead.CallUnary(ctx, connect.NewRequest(&api.MarkNotificationReadRequest{NotificationID: id}))
	require.NoError(t, err)

	list, err = carla.notifications.ListNotifications.CallUnary(ctx, connect.NewRequest(&api.ListNotificationsRequest{UnreadOnly: true}))
	require.NoError(t, err)
	assert.Empty(t, list.Msg.Notifications)

	list, err = carla.notifications.ListNotifications.CallUnary(ctx, connect.NewRequest(&api.ListNotificationsRequest{}))
	require.NoError(t, err)
	require.Len(t, list.Msg.Notifications, 1)
	assert.True(t, list.Msg.Notifications[0].Read)
}
