package api

const (
	AuthServiceName         = "sharezin.v1.AuthService"
	ReceiptServiceName      = "sharezin.v1.ReceiptService"
	GroupServiceName        = "sharezin.v1.GroupService"
	NotificationServiceName = "sharezin.v1.NotificationService"
)

// Fully-qualified procedure paths.
const (
	AuthRegisterProcedure       = "/" + AuthServiceName + "/Register"
	AuthLoginProcedure          = "/" + AuthServiceName + "/Login"
	AuthLogoutProcedure         = "/" + AuthServiceName + "/Logout"
	AuthGetCurrentUserProcedure = "/" + AuthServiceName + "/GetCurrentUser"

	ReceiptCreateProcedure            = "/" + ReceiptServiceName + "/CreateReceipt"
	ReceiptGetProcedure               = "/" + ReceiptServiceName + "/GetReceipt"
	ReceiptGetByInviteCodeProcedure   = "/" + ReceiptServiceName + "/GetReceiptByInviteCode"
	ReceiptListProcedure              = "/" + ReceiptServiceName + "/ListReceipts"
	ReceiptGetSummaryProcedure        = "/" + ReceiptServiceName + "/GetSummary"
	ReceiptAddItemProcedure           = "/" + ReceiptServiceName + "/AddItem"
	ReceiptDeleteItemProcedure        = "/" + ReceiptServiceName + "/DeleteItem"
	ReceiptCloseProcedure             = "/" + ReceiptServiceName + "/CloseReceipt"
	ReceiptCloseParticipantProcedure  = "/" + ReceiptServiceName + "/CloseParticipant"
	ReceiptRemoveParticipantProcedure = "/" + ReceiptServiceName + "/RemoveParticipant"
	ReceiptAddParticipantProcedure    = "/" + ReceiptServiceName + "/AddParticipant"
	ReceiptApplyGroupProcedure        = "/" + ReceiptServiceName + "/ApplyGroup"
	ReceiptTransferCreatorProcedure   = "/" + ReceiptServiceName + "/TransferCreator"
	ReceiptRequestDeletionProcedure   = "/" + ReceiptServiceName + "/RequestDeletion"
	ReceiptApproveDeletionProcedure   = "/" + ReceiptServiceName + "/ApproveDeletion"
	ReceiptRejectDeletionProcedure    = "/" + ReceiptServiceName + "/RejectDeletion"
	ReceiptJoinProcedure              = "/" + ReceiptServiceName + "/JoinReceipt"
	ReceiptApproveJoinProcedure       = "/" + ReceiptServiceName + "/ApproveJoin"
	ReceiptRejectJoinProcedure        = "/" + ReceiptServiceName + "/RejectJoin"

	GroupCreateProcedure = "/" + GroupServiceName + "/CreateGroup"
	GroupGetProcedure    = "/" + GroupServiceName + "/GetGroup"
	GroupListProcedure   = "/" + GroupServiceName + "/ListGroups"
	GroupDeleteProcedure = "/" + GroupServiceName + "/DeleteGroup"

	NotificationListProcedure      = "/" + NotificationServiceName + "/ListNotifications"
	NotificationMarkReadProcedure  = "/" + NotificationServiceName + "/MarkNotificationRead"
	NotificationSubscribeProcedure = "/" + NotificationServiceName + "/Subscribe"
)
