package calculator

import "github.com/mmynk/sharezin/internal/models"

// Share is one participant's calculated part of a receipt.
type Share struct {
	// Subtotal is the sum of the participant's own items.
	Subtotal float64
	// ServiceCharge is the participant's part of the service charge,
	// proportional to Subtotal.
	ServiceCharge float64
	// Cover is the participant's even part of the cover.
	Cover float64
	// Total is Subtotal + ServiceCharge + Cover.
	Total float64
}

// Allocate computes how much each participant owes, keyed by participant ID.
//
// Algorithm:
//   - every participant starts at zero, so people without items still appear
//   - item totals are credited to their owner; items whose owner is gone are skipped
//   - service charge is spread by subtotal / items_total
//   - cover is spread evenly per head
//
// No rounding happens here. A receipt with no participants yields an empty map.
func Allocate(r *models.Receipt) map[string]*Share {
	shares := make(map[string]*Share, len(r.Participants))
	for _, p := range r.Participants {
		shares[p.ID] = &Share{}
	}
	if len(shares) == 0 {
		return shares
	}

	for _, item := range r.Items {
		if share, ok := shares[item.ParticipantID]; ok {
			share.Subtotal += ItemTotal(item)
		}
	}

	itemsTotal := ItemsTotal(r)
	serviceCharge := ServiceChargeAmount(r)
	perHead := r.Cover / float64(len(shares))

	for _, share := range shares {
		if itemsTotal > 0 {
			share.ServiceCharge = share.Subtotal / itemsTotal * serviceCharge
		}
		share.Cover = perHead
		share.Total = share.Subtotal + share.ServiceCharge + share.Cover
	}

	return shares
}

// Totals flattens Allocate to participant ID → amount owed.
func Totals(r *models.Receipt) map[string]float64 {
	shares := Allocate(r)
	totals := make(map[string]float64, len(shares))
	for id, share := range shares {
		totals[id] = share.Total
	}
	return totals
}

// ParticipantSummary is a rounded Share labelled with the participant.
type ParticipantSummary struct {
	ParticipantID string
	Name          string
	IsClosed      bool
	Share
}

// Summary is the reportable breakdown of a receipt. Every figure is rounded to cents.
type Summary struct {
	ItemsTotal    float64
	ServiceCharge float64
	Cover         float64
	Total         float64
	Participants  []ParticipantSummary
}

// Summarize allocates the receipt and rounds each reported figure once.
// Participants keep the receipt's order.
func Summarize(r *models.Receipt) Summary {
	shares := Allocate(r)
	summary := Summary{
		ItemsTotal:    Round(ItemsTotal(r)),
		ServiceCharge: Round(ServiceChargeAmount(r)),
		Cover:         Round(r.Cover),
		Total:         Round(ReceiptTotal(r)),
		Participants:  make([]ParticipantSummary, 0, len(r.Participants)),
	}
	for _, p := range r.Participants {
		share := shares[p.ID]
		summary.Participants = append(summary.Participants, ParticipantSummary{
			ParticipantID: p.ID,
			Name:          p.Name,
			IsClosed:      p.IsClosed,
			Share: Share{
				Subtotal:      Round(share.Subtotal),
				ServiceCharge: Round(share.ServiceCharge),
				Cover:         Round(share.Cover),
				Total:         Round(share.Total),
			},
		})
	}
	return summary
}
