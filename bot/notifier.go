package bot

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"foodcart/logger"
	"foodcart/models"
	"foodcart/services"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// apiTimeout caps every Bot API request.
const apiTimeout = 15 * time.Second

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Notifier posts order cards to the admin chat through the message bot
// (MESSAGE_TOKEN).
type Notifier struct {
	api   sender
	admin int64
	log   *logger.Logger

	getOrder     func(ctx context.Context, id int64) (*models.Order, error)
	listElements func(ctx context.Context, orderID int64) ([]models.OrderElement, error)
}

func NewNotifier(token string, adminChatID int64, log *logger.Logger) (*Notifier, error) {
	if adminChatID == 0 {
		return nil, fmt.Errorf("admin chat id is not set")
	}
	api, err := tgbotapi.NewBotAPIWithClient(token, tgbotapi.APIEndpoint, &http.Client{Timeout: apiTimeout})
	if err != nil {
		return nil, err
	}
	return newNotifier(api, adminChatID, log), nil
}

func newNotifier(api sender, adminChatID int64, log *logger.Logger) *Notifier {
	if log == nil {
		log = logger.Nop()
	}
	return &Notifier{
		api:          api,
		admin:        adminChatID,
		log:          log.With("component", "notifier"),
		getOrder:     services.GetOrder,
		listElements: services.ListOrderElements,
	}
}

// OrderCreated matches services.SetOnOrderCreated.
func (n *Notifier) OrderCreated(ctx context.Context, o *models.Order) {
	if err := n.send(ctx, o); err != nil {
		n.log.Error("order notification failed", "order_id", o.ID, "error", err)
	}
}

// OrderUpdated matches services.SetOnOrderUpdated: the admin gets a fresh
// card each time a line item is added.
func (n *Notifier) OrderUpdated(ctx context.Context, orderID int64) {
	if err := n.SendOrder(ctx, orderID); err != nil {
		n.log.Error("order update notification failed", "order_id", orderID, "error", err)
	}
}

// SendOrder reloads the order with its current line items and posts it.
func (n *Notifier) SendOrder(ctx context.Context, orderID int64) error {
	o, err := n.getOrder(ctx, orderID)
	if err != nil {
		return err
	}
	return n.send(ctx, o)
}

func (n *Notifier) send(ctx context.Context, o *models.Order) error {
	elements, err := n.listElements(ctx, o.ID)
	if err != nil {
		return fmt.Errorf("list order elements: %w", err)
	}
	content := services.BuildAdminOrderCard(o, elements)
	if _, err := n.api.Send(tgbotapi.NewMessage(n.admin, content.Text)); err != nil {
		return fmt.Errorf("send: %w", err)
	}
	n.log.Debug("order notification sent", "order_id", o.ID)
	return nil
}
