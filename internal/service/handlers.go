package service

import (
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/sharezin/pkg/api"
)

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{api.WithCodec()}, opts...)
}

// NewAuthServiceHandler mounts the AuthService procedures.
func NewAuthServiceHandler(svc *AuthService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(api.AuthRegisterProcedure, connect.NewUnaryHandler(api.AuthRegisterProcedure, svc.Register, opts...))
	mux.Handle(api.AuthLoginProcedure, connect.NewUnaryHandler(api.AuthLoginProcedure, svc.Login, opts...))
	mux.Handle(api.AuthLogoutProcedure, connect.NewUnaryHandler(api.AuthLogoutProcedure, svc.Logout, opts...))
	mux.Handle(api.AuthGetCurrentUserProcedure, connect.NewUnaryHandler(api.AuthGetCurrentUserProcedure, svc.GetCurrentUser, opts...))
	return "/" + api.AuthServiceName + "/", mux
}

// NewReceiptServiceHandler mounts the ReceiptService procedures.
func NewReceiptServiceHandler(svc *ReceiptService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(api.ReceiptCreateProcedure, connect.NewUnaryHandler(api.ReceiptCreateProcedure, svc.CreateReceipt, opts...))
	mux.Handle(api.ReceiptGetProcedure, connect.NewUnaryHandler(api.ReceiptGetProcedure, svc.GetReceipt, opts...))
	mux.Handle(api.ReceiptGetByInviteCodeProcedure, connect.NewUnaryHandler(api.ReceiptGetByInviteCodeProcedure, svc.GetReceiptByInviteCode, opts...))
	mux.Handle(api.ReceiptListProcedure, connect.NewUnaryHandler(api.ReceiptListProcedure, svc.ListReceipts, opts...))
	mux.Handle(api.ReceiptGetSummaryProcedure, connect.NewUnaryHandler(api.ReceiptGetSummaryProcedure, svc.GetSummary, opts...))
	mux.Handle(api.ReceiptAddItemProcedure, connect.NewUnaryHandler(api.ReceiptAddItemProcedure, svc.AddItem, opts...))
	mux.Handle(api.ReceiptDeleteItemProcedure, connect.NewUnaryHandler(api.ReceiptDeleteItemProcedure, svc.DeleteItem, opts...))
	mux.Handle(api.ReceiptCloseProcedure, connect.NewUnaryHandler(api.ReceiptCloseProcedure, svc.CloseReceipt, opts...))
	mux.Handle(api.ReceiptCloseParticipantProcedure, connect.NewUnaryHandler(api.ReceiptCloseParticipantProcedure, svc.CloseParticipant, opts...))
	mux.Handle(api.ReceiptRemoveParticipantProcedure, connect.NewUnaryHandler(api.ReceiptRemoveParticipantProcedure, svc.RemoveParticipant, opts...))
	mux.Handle(api.ReceiptAddParticipantProcedure, connect.NewUnaryHandler(api.ReceiptAddParticipantProcedure, svc.AddParticipant, opts...))
	mux.Handle(api.ReceiptApplyGroupProcedure, connect.NewUnaryHandler(api.ReceiptApplyGroupProcedure, svc.ApplyGroup, opts...))
	mux.Handle(api.ReceiptTransferCreatorProcedure, connect.NewUnaryHandler(api.ReceiptTransferCreatorProcedure, svc.TransferCreator, opts...))
	mux.Handle(api.ReceiptRequestDeletionProcedure, connect.NewUnaryHandler(api.ReceiptRequestDeletionProcedure, svc.RequestDeletion, opts...))
	mux.Handle(api.ReceiptApproveDeletionProcedure, connect.NewUnaryHandler(api.ReceiptApproveDeletionProcedure, svc.ApproveDeletion, opts...))
	mux.Handle(api.ReceiptRejectDeletionProcedure, connect.NewUnaryHandler(api.ReceiptRejectDeletionProcedure, svc.RejectDeletion, opts...))
	mux.Handle(api.ReceiptJoinProcedure, connect.NewUnaryHandler(api.ReceiptJoinProcedure, svc.JoinReceipt, opts...))
	mux.Handle(api.ReceiptApproveJoinProcedure, connect.NewUnaryHandler(api.ReceiptApproveJoinProcedure, svc.ApproveJoin, opts...))
	mux.Handle(api.ReceiptRejectJoinProcedure, connect.NewUnaryHandler(api.ReceiptRejectJoinProcedure, svc.RejectJoin, opts...))
	return "/" + api.ReceiptServiceName + "/", mux
}

// NewGroupServiceHandler mounts the GroupService procedures.
func NewGroupServiceHandler(svc *GroupService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(api.GroupCreateProcedure, connect.NewUnaryHandler(api.GroupCreateProcedure, svc.CreateGroup, opts...))
	mux.Handle(api.GroupGetProcedure, connect.NewUnaryHandler(api.GroupGetProcedure, svc.GetGroup, opts...))
	mux.Handle(api.GroupListProcedure, connect.NewUnaryHandler(api.GroupListProcedure, svc.ListGroups, opts...))
	mux.Handle(api.GroupDeleteProcedure, connect.NewUnaryHandler(api.GroupDeleteProcedure, svc.DeleteGroup, opts...))
	return "/" + api.GroupServiceName + "/", mux
}

// NewNotificationServiceHandler mounts the NotificationService procedures.
func NewNotificationServiceHandler(svc *NotificationService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(api.NotificationListProcedure, connect.NewUnaryHandler(api.NotificationListProcedure, svc.ListNotifications, opts...))
	mux.Handle(api.NotificationMarkReadProcedure, connect.NewUnaryHandler(api.NotificationMarkReadProcedure, svc.MarkNotificationRead, opts...))
	mux.Handle(api.NotificationSubscribeProcedure, connect.NewServerStreamHandler(api.NotificationSubscribeProcedure, svc.Subscribe, opts...))
	return "/" + api.NotificationServiceName + "/", mux
}
