package service

import (
	"github.com/mmynk/sharezin/internal/calculator"
	"github.com/mmynk/sharezin/internal/models"
	"github.com/mmynk/sharezin/pkg/api"
)

func toAPIUser(u *models.User) *api.User {
	return &api.User{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
	}
}

func toAPIReceipt(r *models.Receipt) *api.Receipt {
	out := &api.Receipt{
		ID:                   r.ID,
		Title:                r.Title,
		Date:                 r.Date,
		CreatorID:            r.CreatorID,
		InviteCode:           r.InviteCode,
		ServiceChargePercent: r.ServiceChargePercent,
		Cover:                r.Cover,
		Total:                r.Total,
		IsClosed:             r.IsClosed,
		Version:              r.Version,
		CreatedAt:            r.CreatedAt,
		Participants:         make([]api.Participant, len(r.Participants)),
		PendingParticipants:  make([]api.PendingParticipant, len(r.PendingParticipants)),
		Items:                make([]api.Item, len(r.Items)),
		DeletionRequests:     make([]api.DeletionRequest, len(r.DeletionRequests)),
	}
	for i, p := range r.Participants {
		out.Participants[i] = api.Participant{
			ID:       p.ID,
			Name:     p.Name,
			UserID:   p.UserID,
			GroupID:  p.GroupID,
			IsClosed: p.IsClosed,
		}
	}
	for i, p := range r.PendingParticipants {
		out.PendingParticipants[i] = api.PendingParticipant{
			ID:          p.ID,
			Name:        p.Name,
			UserID:      p.UserID,
			RequestedAt: p.RequestedAt.Unix(),
		}
	}
	for i, item := range r.Items {
		out.Items[i] = api.Item{
			ID:            item.ID,
			Name:          item.Name,
			Quantity:      item.Quantity,
			Price:         item.Price,
			ParticipantID: item.ParticipantID,
			AddedAt:       item.AddedAt.Unix(),
		}
	}
	for i, dr := range r.DeletionRequests {
		out.DeletionRequests[i] = api.DeletionRequest{
			ID:            dr.ID,
			ItemID:        dr.ItemID,
			ParticipantID: dr.ParticipantID,
			RequestedAt:   dr.RequestedAt.Unix(),
		}
	}
	return out
}

func toAPIPreview(r *models.Receipt) *api.ReceiptPreview {
	return &api.ReceiptPreview{
		ID:               r.ID,
		Title:            r.Title,
		Date:             r.Date,
		IsClosed:         r.IsClosed,
		ParticipantCount: len(r.Participants),
	}
}

func toAPISummary(receiptID string, s calculator.Summary) *api.Summary {
	out := &api.Summary{
		ReceiptID:     receiptID,
		ItemsTotal:    s.ItemsTotal,
		ServiceCharge: s.ServiceCharge,
		Cover:         s.Cover,
		Total:         s.Total,
		Shares:        make([]api.Share, len(s.Participants)),
	}
	for i, p := range s.Participants {
		out.Shares[i] = api.Share{
			ParticipantID: p.ParticipantID,
			Name:          p.Name,
			IsClosed:      p.IsClosed,
			Subtotal:      p.Subtotal,
			ServiceCharge: p.ServiceCharge,
			Cover:         p.Cover,
			Total:         p.Total,
		}
	}
	return out
}

func toAPIGroup(g *models.Group) *api.Group {
	members := make([]api.GroupMember, len(g.Members))
	for i, m := range g.Members {
		members[i] = api.GroupMember{Name: m.Name, UserID: m.UserID}
	}
	return &api.Group{
		ID:        g.ID,
		Name:      g.Name,
		OwnerID:   g.OwnerID,
		Members:   members,
		CreatedAt: g.CreatedAt,
	}
}

func toAPINotification(n *models.Notification) *api.Notification {
	return &api.Notification{
		ID:            n.ID,
		Type:          string(n.Type),
		Title:         n.Title,
		Message:       n.Message,
		ReceiptID:     n.ReceiptID,
		RelatedUserID: n.RelatedUserID,
		Read:          n.Read,
		CreatedAt:     n.CreatedAt,
	}
}
