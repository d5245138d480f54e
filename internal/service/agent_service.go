package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/RehanShaikh007/TextileERP-sub000/internal/model"
)

type AgentRequest struct {
	Message string `json:"message" binding:"required,max=2000"`
}

type AgentReply struct {
	Reply   string   `json:"reply"`
	Intents []string `json:"intents"`
}

// AgentService answers free-text questions from the dashboard figures
type AgentService interface {
	Chat(ctx context.Context, req AgentRequest) (AgentReply, error)
}

type agentService struct {
	dashboard DashboardService
	now       func() time.Time
}

func NewAgentService(dashboard DashboardService) AgentService {
	return &agentService{dashboard: dashboard, now: time.Now}
}

type intent struct {
	name     string
	keywords []string
	answer   func(model.DashboardStats) string
}

var intents = []intent{
	{"stock", []string{"stock", "inventory", "meter", "color", "colour"}, answerStock},
	{"order", []string{"order", "pending", "shipped", "delivered"}, answerOrders},
	{"return", []string{"return", "refund"}, answerReturns},
	{"customer", []string{"customer", "client", "buyer"}, answerCustomers},
	{"revenue", []string{"revenue", "sales", "income", "earning", "total"}, answerRevenue},
}

const agentHelp = "I can summarise stock, orders, returns, customers and revenue. Try \"how is stock looking?\" or \"what was revenue this month?\""

func (s *agentService) Chat(ctx context.Context, req AgentRequest) (AgentReply, error) {
	text := strings.ToLower(req.Message)

	var matched []intent
	for _, in := range intents {
		for _, kw := range in.keywords {
			if strings.Contains(text, kw) {
				matched = append(matched, in)
				break
			}
		}
	}
	if len(matched) == 0 {
		return AgentReply{Reply: agentHelp, Intents: []string{"help"}}, nil
	}

	start, end := DefaultRange(s.now())
	stats, err := s.dashboard.GetDashboard(ctx, start, end)
	if err != nil {
		return AgentReply{}, fmt.Errorf("failed to load dashboard: %w", err)
	}

	reply := AgentReply{}
	parts := make([]string, 0, len(matched))
	for _, in := range matched {
		parts = append(parts, in.answer(stats))
		reply.Intents = append(reply.Intents, in.name)
	}
	reply.Reply = strings.Join(parts, "\n")
	return reply, nil
}

func answerStock(st model.DashboardStats) string {
	return fmt.Sprintf("You have %d products. %d colour variants are running low (under %s m) and %d are out of stock.",
		st.TotalProducts, st.LowStockVariants, model.LowStockThreshold.String(), st.OutOfStock)
}

func answerOrders(st model.DashboardStats) string {
	statuses := make([]string, 0, len(st.OrdersByStatus))
	for status := range st.OrdersByStatus {
		statuses = append(statuses, status)
	}
	sort.Strings(statuses)

	parts := make([]string, 0, len(statuses))
	for _, status := range statuses {
		parts = append(parts, fmt.Sprintf("%d %s", st.OrdersByStatus[status], status))
	}
	if len(parts) == 0 {
		return "There are no orders in the last 12 months."
	}
	return fmt.Sprintf("%d orders in the last 12 months: %s.", st.TotalOrders, strings.Join(parts, ", "))
}

func answerReturns(st model.DashboardStats) string {
	return fmt.Sprintf("%d returns are waiting for a decision. Approved refunds total ₹%s.",
		st.PendingReturns, st.RefundTotal.StringFixed(2))
}

func answerCustomers(st model.DashboardStats) string {
	return fmt.Sprintf("You have %d customers on record.", st.TotalCustomers)
}

func answerRevenue(st model.DashboardStats) string {
	msg := fmt.Sprintf("Revenue over the last 12 months is ₹%s.", st.TotalRevenue.StringFixed(2))
	if n := len(st.MonthlyRevenue); n > 0 {
		last := st.MonthlyRevenue[n-1]
		msg += fmt.Sprintf(" %s brought ₹%s from %d orders.", last.Period, last.Revenue.StringFixed(2), last.Orders)
	}
	return msg
}
