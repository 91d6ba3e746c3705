package api

import (
	"connectrpc.com/connect"
)

// AuthServiceClient calls the AuthService procedures.
type AuthServiceClient struct {
	Register       *connect.Client[RegisterRequest, RegisterResponse]
	Login          *connect.Client[LoginRequest, LoginResponse]
	Logout         *connect.Client[LogoutRequest, LogoutResponse]
	GetCurrentUser *connect.Client[GetCurrentUserRequest, GetCurrentUserResponse]
}

// NewAuthServiceClient builds a client for the AuthService at baseURL.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *AuthServiceClient {
	opts = append([]connect.ClientOption{WithCodec()}, opts...)
	return &AuthServiceClient{
		Register:       connect.NewClient[RegisterRequest, RegisterResponse](httpClient, baseURL+AuthRegisterProcedure, opts...),
		Login:          connect.NewClient[LoginRequest, LoginResponse](httpClient, baseURL+AuthLoginProcedure, opts...),
		Logout:         connect.NewClient[LogoutRequest, LogoutResponse](httpClient, baseURL+AuthLogoutProcedure, opts...),
		GetCurrentUser: connect.NewClient[GetCurrentUserRequest, GetCurrentUserResponse](httpClient, baseURL+AuthGetCurrentUserProcedure, opts...),
	}
}

// ReceiptServiceClient calls the ReceiptService procedures.
type ReceiptServiceClient struct {
	CreateReceipt          *connect.Client[CreateReceiptRequest, ReceiptResponse]
	GetReceipt             *connect.Client[GetReceiptRequest, ReceiptResponse]
	GetReceiptByInviteCode *connect.Client[GetReceiptByInviteCodeRequest, GetReceiptByInviteCodeResponse]
	ListReceipts           *connect.Client[ListReceiptsRequest, ListReceiptsResponse]
	GetSummary             *connect.Client[GetSummaryRequest, GetSummaryResponse]
	AddItem                *connect.Client[AddItemRequest, ReceiptResponse]
	DeleteItem             *connect.Client[DeleteItemRequest, ReceiptResponse]
	CloseReceipt           *connect.Client[CloseReceiptRequest, ReceiptResponse]
	CloseParticipant       *connect.Client[ParticipantRequest, ReceiptResponse]
	RemoveParticipant      *connect.Client[ParticipantRequest, ReceiptResponse]
	AddParticipant         *connect.Client[AddParticipantRequest, ReceiptResponse]
	ApplyGroup             *connect.Client[ApplyGroupRequest, ReceiptResponse]
	TransferCreator        *connect.Client[ParticipantRequest, ReceiptResponse]
	RequestDeletion        *connect.Client[RequestDeletionRequest, ReceiptResponse]
	ApproveDeletion        *connect.Client[DecisionRequest, ReceiptResponse]
	RejectDeletion         *connect.Client[DecisionRequest, ReceiptResponse]
	JoinReceipt            *connect.Client[JoinReceiptRequest, ReceiptResponse]
	ApproveJoin            *connect.Client[DecisionRequest, ReceiptResponse]
	RejectJoin             *connect.Client[DecisionRequest, ReceiptResponse]
}

// NewReceiptServiceClient builds a client for the ReceiptService at baseURL.
func NewReceiptServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *ReceiptServiceClient {
	opts = append([]connect.ClientOption{WithCodec()}, opts...)
	return &ReceiptServiceClient{
		CreateReceipt:          connect.NewClient[CreateReceiptRequest, ReceiptResponse](httpClient, baseURL+ReceiptCreateProcedure, opts...),
		GetReceipt:             connect.NewClient[GetReceiptRequest, ReceiptResponse](httpClient, baseURL+ReceiptGetProcedure, opts...),
		GetReceiptByInviteCode: connect.NewClient[GetReceiptByInviteCodeRequest, GetReceiptByInviteCodeResponse](httpClient, baseURL+ReceiptGetByInviteCodeProcedure, opts...),
		ListReceipts:           connect.NewClient[ListReceiptsRequest, ListReceiptsResponse](httpClient, baseURL+ReceiptListProcedure, opts...),
		GetSummary:             connect.NewClient[GetSummaryRequest, GetSummaryResponse](httpClient, baseURL+ReceiptGetSummaryProcedure, opts...),
		AddItem:                connect.NewClient[AddItemRequest, ReceiptResponse](httpClient, baseURL+ReceiptAddItemProcedure, opts...),
		DeleteItem:             connect.NewClient[DeleteItemRequest, ReceiptResponse](httpClient, baseURL+ReceiptDeleteItemProcedure, opts...),
		CloseReceipt:           connect.NewClient[CloseReceiptRequest, ReceiptResponse](httpClient, baseURL+ReceiptCloseProcedure, opts...),
		CloseParticipant:       connect.NewClient[ParticipantRequest, ReceiptResponse](httpClient, baseURL+ReceiptCloseParticipantProcedure, opts...),
		RemoveParticipant:      connect.NewClient[ParticipantRequest, ReceiptResponse](httpClient, baseURL+ReceiptRemoveParticipantProcedure, opts...),
		AddParticipant:         connect.NewClient[AddParticipantRequest, ReceiptResponse](httpClient, baseURL+ReceiptAddParticipantProcedure, opts...),
		ApplyGroup:             connect.NewClient[ApplyGroupRequest, ReceiptResponse](httpClient, baseURL+ReceiptApplyGroupProcedure, opts...),
		TransferCreator:        connect.NewClient[ParticipantRequest, ReceiptResponse](httpClient, baseURL+ReceiptTransferCreatorProcedure, opts...),
		RequestDeletion:        connect.NewClient[RequestDeletionRequest, ReceiptResponse](httpClient, baseURL+ReceiptRequestDeletionProcedure, opts...),
		ApproveDeletion:        connect.NewClient[DecisionRequest, ReceiptResponse](httpClient, baseURL+ReceiptApproveDeletionProcedure, opts...),
		RejectDeletion:         connect.NewClient[DecisionRequest, ReceiptResponse](httpClient, baseURL+ReceiptRejectDeletionProcedure, opts...),
		JoinReceipt:            connect.NewClient[JoinReceiptRequest, ReceiptResponse](httpClient, baseURL+ReceiptJoinProcedure, opts...),
		ApproveJoin:            connect.NewClient[DecisionRequest, ReceiptResponse](httpClient, baseURL+ReceiptApproveJoinProcedure, opts...),
		RejectJoin:             connect.NewClient[DecisionRequest, ReceiptResponse](httpClient, baseURL+ReceiptRejectJoinProcedure, opts...),
	}
}

// GroupServiceClient calls the GroupService procedures.
type GroupServiceClient struct {
	CreateGroup *connect.Client[CreateGroupRequest, GroupResponse]
	GetGroup    *connect.Client[GetGroupRequest, GroupResponse]
	ListGroups  *connect.Client[ListGroupsRequest, ListGroupsResponse]
	DeleteGroup *connect.Client[DeleteGroupRequest, DeleteGroupResponse]
}

// NewGroupServiceClient builds a client for the GroupService at baseURL.
func NewGroupServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *GroupServiceClient {
	opts = append([]connect.ClientOption{WithCodec()}, opts...)
	return &GroupServiceClient{
		CreateGroup: connect.NewClient[CreateGroupRequest, GroupResponse](httpClient, baseURL+GroupCreateProcedure, opts...),
		GetGroup:    connect.NewClient[GetGroupRequest, GroupResponse](httpClient, baseURL+GroupGetProcedure, opts...),
		ListGroups:  connect.NewClient[ListGroupsRequest, ListGroupsResponse](httpClient, baseURL+GroupListProcedure, opts...),
		DeleteGroup: connect.NewClient[DeleteGroupRequest, DeleteGroupResponse](httpClient, baseURL+GroupDeleteProcedure, opts...),
	}
}

// NotificationServiceClient calls the NotificationService procedures.
type NotificationServiceClient struct {
	ListNotifications    *connect.Client[ListNotificationsRequest, ListNotificationsResponse]
	MarkNotificationRead *connect.Client[MarkNotificationReadRequest, MarkNotificationReadResponse]
	Subscribe            *connect.Client[SubscribeRequest, Notification]
}

// NewNotificationServiceClient builds a client for the NotificationService at baseURL.
func NewNotificationServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *NotificationServiceClient {
	opts = append([]connect.ClientOption{WithCodec()}, opts...)
	return &NotificationServiceClient{
		ListNotifications:    connect.NewClient[ListNotificationsRequest, ListNotificationsResponse](httpClient, baseURL+NotificationListProcedure, opts...),
		MarkNotificationRead: connect.NewClient[MarkNotificationReadRequest, MarkNotificationReadResponse](httpClient, baseURL+NotificationMarkReadProcedure, opts...),
		Subscribe:            connect.NewClient[SubscribeRequest, Notification](httpClient, baseURL+NotificationSubscribeProcedure, opts...),
	}
}
