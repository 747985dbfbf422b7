package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Bishesh-P/coffee-alpico-sub000/cart"
	"github.com/Bishesh-P/coffee-alpico-sub000/models"
	"github.com/Bishesh-P/coffee-alpico-sub000/pricing"
	"go.uber.org/zap"
)

// orderIDAttempts bounds how many ids SubmitShipping draws before giving up.
const orderIDAttempts = 3

// Deps wires the service to its collaborators. Notifier, Logger and Now are
// optional.
type Deps struct {
	Orders        OrderSink
	Receipts      ReceiptStore
	Snapshots     SnapshotStore
	Customers     CustomerInfoCache
	Notifier      Notifier
	Logger        *zap.Logger
	Now           func() time.Time
	OrderIDPrefix string
}

// Service executes checkout transitions against a shopper. Step changes go
// through Next; the service only adds validation and remote effects around
// them. While a remote call runs the shopper is unlocked but flagged, so a
// second side-effecting transition fails with ErrTransitionInFlight.
type Service struct {
	orders    OrderSink
	receipts  ReceiptStore
	snapshots SnapshotStore
	customers CustomerInfoCache
	notifier  Notifier
	log       *zap.Logger
	now       func() time.Time
	prefix    string
}

func NewService(d Deps) *Service {
	s := &Service{
		orders:    d.Orders,
		receipts:  d.Receipts,
		snapshots: d.Snapshots,
		customers: d.Customers,
		notifier:  d.Notifier,
		log:       d.Logger,
		now:       d.Now,
		prefix:    d.OrderIDPrefix,
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.prefix == "" {
		s.prefix = "ORD"
	}
	return s
}

// View is the client-facing state of a checkout.
type View struct {
	Step            Step                `json:"step"`
	OrderID         string              `json:"order_id,omitempty"`
	Platform        Platform            `json:"platform,omitempty"`
	ReceiptURL      string              `json:"receipt_url,omitempty"`
	Form            models.ShippingForm `json:"form"`
	SaveInfo        bool                `json:"save_info"`
	Lines           []cart.Line         `json:"lines"`
	PendingVariants []uint              `json:"pending_variants,omitempty"`
	Pricing         pricing.Breakdown   `json:"pricing"`
	CanGoBack       bool                `json:"can_go_back"`
	AutoAdvanceAt   *time.Time          `json:"auto_advance_at,omitempty"`
}

// Begin starts a fresh checkout for the shopper's cart, prefilled from the
// customer info cache when available.
func (s *Service) Begin(ctx context.Context, sh *Shopper) (View, error) {
	sh.mu.Lock()
	defer sh.mu.Unlock()

	if sh.inFlight {
		return View{}, ErrTransitionInFlight
	}
	if sh.Cart.IsEmpty() {
		return View{}, ErrEmptyCart
	}

	sess := &Session{Step: EntryStep(sh.Cart)}
	if form, ok := s.loadCustomerInfo(ctx, sh.ID); ok {
		sess.Form = form
		sess.SaveInfo = true
	}
	sh.session = sess
	s.settle(sh)

	s.log.Debug("checkout started", zap.String("shopper_id", sh.ID), zap.String("step", string(sess.Step)))
	return s.view(sh), nil
}

// Current returns the checkout state, applying any due variant auto-advance.
func (s *Service) Current(sh *Shopper) (View, error) {
	sh.mu.Lock()
	defer sh.mu.Unlock()

	if _, err := s.active(sh); err != nil {
		return View{}, err
	}
	return s.view(sh), nil
}

// Abandon drops the checkout in progress, as when the shopper returns to the cart.
func (s *Service) Abandon(sh *Shopper) error {
	sh.mu.Lock()
	defer sh.mu.Unlock()

	if sh.inFlight {
		return ErrTransitionInFlight
	}
	sh.session = nil
	return nil
}

// SelectVariant chooses a variant for a line that has none during the
// variants step. Once every line is complete the step advances on its own
// after VariantAutoAdvanceDelay.
func (s *Service) SelectVariant(sh *Shopper, productID uint, variantID string) (View, error) {
	sh.mu.Lock()
	defer sh.mu.Unlock()

	sess, err := s.active(sh)
	if err != nil {
		return View{}, err
	}
	if sess.Step != StepVariants {
		return View{}, fmt.Errorf("%w: variant selection outside %s", ErrIllegalTransition, StepVariants)
	}

	var variant models.Variant
	found := false
	for _, l := range sh.Cart.Lines() {
		if l.Product.ID == productID && l.Variant == nil {
			variant, found = l.Product.Variant(variantID)
			break
		}
	}
	if !found {
		return View{}, fmt.Errorf("%w: product %d variant %q", ErrUnknownVariant, productID, variantID)
	}

	sh.Cart.SetVariant(productID, variant)
	s.settle(sh)
	return s.view(sh), nil
}

// Continue leaves the variants step without waiting for the auto-advance.
func (s *Service) Continue(sh *Shopper) (View, error) {
	sh.mu.Lock()
	defer sh.mu.Unlock()

	sess, err := s.active(sh)
	if err != nil {
		return View{}, err
	}
	next, err := Next(sess.Step, EventVariantsComplete)
	if err != nil {
		return View{}, err
	}
	if sh.Cart.NeedsVariants() {
		return View{}, ErrVariantsPending
	}
	sess.Step = next
	sess.variantsReadyAt = time.Time{}
	return s.view(sh), nil
}

// SubmitShipping validates the form and writes the order record. The step
// only advances once the sink accepts the insert.
func (s *Service) SubmitShipping(ctx context.Context, sh *Shopper, form models.ShippingForm, saveInfo bool) (View, error) {
	sh.mu.Lock()
	sess, err := s.active(sh)
	if err != nil {
		sh.mu.Unlock()
		return View{}, err
	}
	next, err := Next(sess.Step, EventShippingSubmitted)
	if err != nil {
		sh.mu.Unlock()
		return View{}, err
	}
	form = trimForm(form)
	if err := ValidateShipping(form); err != nil {
		sh.mu.Unlock()
		return View{}, err
	}
	if sh.Cart.NeedsVariants() {
		sh.mu.Unlock()
		return View{}, ErrVariantsPending
	}
	if err := sh.beginFlight(); err != nil {
		sh.mu.Unlock()
		return View{}, err
	}
	sess.assignOrderID(s.now(), s.prefix)
	order := s.buildOrder(sh, sess.OrderID, form, sess.Platform)
	sh.mu.Unlock()

	order, err = s.insertNewOrder(ctx, order)
	if err == nil {
		s.orderSaved(order)
	}

	sh.mu.Lock()
	defer sh.mu.Unlock()
	sh.inFlight = false

	if err != nil {
		s.log.Warn("order insert failed", zap.String("order_id", order.OrderID), zap.Error(err))
		if errors.Is(err, ErrOrderIDConflict) {
			sess.OrderID = ""
		}
		return View{}, fmt.Errorf("insert order: %w: %w", ErrPersistence, err)
	}

	sess.OrderID = order.OrderID
	sess.Form = form
	sess.SaveInfo = saveInfo
	sess.Step = next
	if saveInfo {
		if err := s.customers.SaveCustomerInfo(ctx, sh.ID, form); err != nil {
			s.log.Warn("saving customer info failed", zap.String("shopper_id", sh.ID), zap.Error(err))
		}
	}
	return s.view(sh), nil
}

// Confirm accepts the order summary.
func (s *Service) Confirm(sh *Shopper) (View, error) {
	sh.mu.Lock()
	defer sh.mu.Unlock()

	sess, err := s.active(sh)
	if err != nil {
		return View{}, err
	}
	if sh.inFlight {
		return View{}, ErrTransitionInFlight
	}
	next, err := Next(sess.Step, EventConfirmed)
	if err != nil {
		return View{}, err
	}
	sess.assignOrderID(s.now(), s.prefix)
	sess.Step = next
	return s.view(sh), nil
}

// SelectPlatform records the payment platform on the order. Cash on
// delivery completes the order right away; online platforms move on to
// payment.
func (s *Service) SelectPlatform(ctx context.Context, sh *Shopper, key string) (View, error) {
	platform, ok := ParsePlatform(key)
	if !ok {
		return View{}, fmt.Errorf("%w: %q", ErrUnknownPlatform, key)
	}

	sh.mu.Lock()
	sess, err := s.active(sh)
	if err != nil {
		sh.mu.Unlock()
		return View{}, err
	}
	event := EventOnlinePlatformSelected
	if !platform.IsOnline() {
		event = EventCashOnDeliverySelected
	}
	next, err := Next(sess.Step, event)
	if err != nil {
		sh.mu.Unlock()
		return View{}, err
	}
	if err := sh.beginFlight(); err != nil {
		sh.mu.Unlock()
		return View{}, err
	}
	sess.assignOrderID(s.now(), s.prefix)
	order := s.buildOrder(sh, sess.OrderID, sess.Form, platform)
	var snap models.OrderSnapshot
	if next == StepSuccess {
		snap = s.snapshot(sh, sess, platform)
	}
	sh.mu.Unlock()

	if err = s.orders.InsertOrder(ctx, order); err != nil {
		err = fmt.Errorf("record platform: %w: %w", ErrPersistence, err)
	} else {
		s.orderSaved(order)
		if next == StepSuccess {
			if serr := s.snapshots.SaveSnapshot(ctx, sh.ID, snap); serr != nil {
				err = fmt.Errorf("save order snapshot: %w: %w", ErrPersistence, serr)
			}
		}
	}

	sh.mu.Lock()
	defer sh.mu.Unlock()
	sh.inFlight = false

	if err != nil {
		s.log.Warn("platform selection failed", zap.String("order_id", order.OrderID), zap.Error(err))
		return View{}, err
	}

	sess.Platform = platform
	sess.Step = next
	if next == StepSuccess {
		sh.Cart.Clear()
		s.log.Info("order completed", zap.String("order_id", order.OrderID), zap.String("platform", string(platform)))
	}
	return s.view(sh), nil
}

// AcknowledgePayment is the shopper's claim that the QR payment is done.
// Nothing is verified here.
func (s *Service) AcknowledgePayment(sh *Shopper) (View, error) {
	return s.step(sh, EventPaymentAcknowledged)
}

// Back returns to the previous step where the table allows it.
func (s *Service) Back(sh *Shopper) (View, error) {
	return s.step(sh, EventBack)
}

func (s *Service) step(sh *Shopper, event Event) (View, error) {
	sh.mu.Lock()
	defer sh.mu.Unlock()

	sess, err := s.active(sh)
	if err != nil {
		return View{}, err
	}
	if sh.inFlight {
		return View{}, ErrTransitionInFlight
	}
	next, err := Next(sess.Step, event)
	if err != nil {
		return View{}, err
	}
	sess.Step = next
	return s.view(sh), nil
}

// UploadReceipt stores the payment receipt, attaches it to the order and
// completes the checkout. A missing file is rejected before any remote call.
func (s *Service) UploadReceipt(ctx context.Context, sh *Shopper, upload *Upload) (View, error) {
	sh.mu.Lock()
	sess, err := s.active(sh)
	if err != nil {
		sh.mu.Unlock()
		return View{}, err
	}
	next, err := Next(sess.Step, EventReceiptUploaded)
	if err != nil {
		sh.mu.Unlock()
		return View{}, err
	}
	if upload == nil || upload.Body == nil || upload.Size <= 0 {
		sh.mu.Unlock()
		return View{}, ErrNoReceiptFile
	}
	if err := sh.beginFlight(); err != nil {
		sh.mu.Unlock()
		return View{}, err
	}
	orderID := sess.OrderID
	snap := s.snapshot(sh, sess, sess.Platform)
	sh.mu.Unlock()

	url, err := s.storeReceipt(ctx, orderID, *upload)
	if err == nil {
		snap.ReceiptURL = url
		if serr := s.snapshots.SaveSnapshot(ctx, sh.ID, snap); serr != nil {
			err = fmt.Errorf("save order snapshot: %w: %w", ErrPersistence, serr)
		}
	}

	sh.mu.Lock()
	defer sh.mu.Unlock()
	sh.inFlight = false

	if err != nil {
		s.log.Warn("receipt upload failed", zap.String("order_id", orderID), zap.Error(err))
		return View{}, err
	}

	sess.ReceiptURL = url
	sess.Step = next
	sh.Cart.Clear()
	s.log.Info("order completed", zap.String("order_id", orderID), zap.String("receipt_url", url))
	return s.view(sh), nil
}

// insertNewOrder writes the order, drawing a fresh id while the sink
// reports the current one as taken by another session.
func (s *Service) insertNewOrder(ctx context.Context, order models.Order) (models.Order, error) {
	for attempt := 1; ; attempt++ {
		err := s.orders.InsertOrder(ctx, order)
		if !errors.Is(err, ErrOrderIDConflict) || attempt == orderIDAttempts {
			return order, err
		}
		id := NewOrderID(s.prefix, s.now().Add(time.Duration(attempt)*time.Millisecond))
		s.log.Warn("order id taken, retrying", zap.String("order_id", order.OrderID), zap.String("next_order_id", id))
		order = withOrderID(order, id)
	}
}

func withOrderID(order models.Order, id string) models.Order {
	order.OrderID = id
	items := make([]models.OrderItem, len(order.Items))
	for i, item := range order.Items {
		item.OrderID = id
		items[i] = item
	}
	order.Items = items
	return order
}

func (s *Service) storeReceipt(ctx context.Context, orderID string, upload Upload) (string, error) {
	url, err := s.receipts.UploadReceipt(ctx, orderID, upload)
	if err != nil {
		return "", fmt.Errorf("upload receipt: %w: %w", ErrPersistence, err)
	}
	if err := s.orders.UpdateOrderReceipt(ctx, orderID, url); err != nil {
		return "", fmt.Errorf("attach receipt: %w: %w", ErrPersistence, err)
	}
	return url, nil
}

// Success returns the snapshot of the shopper's last completed order.
func (s *Service) Success(ctx context.Context, sh *Shopper) (models.OrderSnapshot, error) {
	snap, ok, err := s.snapshots.LoadSnapshot(ctx, sh.ID)
	if err != nil {
		return models.OrderSnapshot{}, fmt.Errorf("load order snapshot: %w", err)
	}
	if !ok {
		return models.OrderSnapshot{}, ErrNoSnapshot
	}
	return snap, nil
}

// CustomerInfo returns the cached shipping details, if any.
func (s *Service) CustomerInfo(ctx context.Context, sh *Shopper) (models.ShippingForm, bool, error) {
	return s.customers.LoadCustomerInfo(ctx, sh.ID)
}

// ClearCustomerInfo forgets the cached shipping details.
func (s *Service) ClearCustomerInfo(ctx context.Context, sh *Shopper) error {
	return s.customers.ClearCustomerInfo(ctx, sh.ID)
}

func (s *Service) loadCustomerInfo(ctx context.Context, shopperID string) (models.ShippingForm, bool) {
	form, ok, err := s.customers.LoadCustomerInfo(ctx, shopperID)
	if err != nil {
		s.log.Warn("loading customer info failed", zap.String("shopper_id", shopperID), zap.Error(err))
		return models.ShippingForm{}, false
	}
	return form, ok
}

func (s *Service) orderSaved(order models.Order) {
	s.log.Info("order saved", zap.String("order_id", order.OrderID), zap.String("total", order.Total.StringFixed(2)))
	if s.notifier != nil {
		s.notifier.OrderSaved(order)
	}
}

// active returns the running session. An emptied cart ends any checkout
// that has not completed. Callers hold sh.mu.
func (s *Service) active(sh *Shopper) (*Session, error) {
	sess := sh.session
	if sess == nil {
		return nil, ErrNoCheckout
	}
	if sess.Step != StepSuccess && !sh.inFlight && sh.Cart.IsEmpty() {
		sh.session = nil
		return nil, ErrEmptyCart
	}
	s.settle(sh)
	return sess, nil
}

// settle arms or fires the variants auto-advance. Callers hold sh.mu.
func (s *Service) settle(sh *Shopper) {
	sess := sh.session
	if sess == nil || sess.Step != StepVariants {
		return
	}
	if sh.Cart.NeedsVariants() {
		sess.variantsReadyAt = time.Time{}
		return
	}
	now := s.now()
	if sess.variantsReadyAt.IsZero() {
		sess.variantsReadyAt = now.Add(VariantAutoAdvanceDelay)
		return
	}
	if !now.Before(sess.variantsReadyAt) {
		if next, err := Next(sess.Step, EventVariantsComplete); err == nil {
			sess.Step = next
			sess.variantsReadyAt = time.Time{}
		}
	}
}

func (s *Service) view(sh *Shopper) View {
	sess := sh.session
	lines := sh.Cart.Lines()
	v := View{
		Step:       sess.Step,
		OrderID:    sess.OrderID,
		Platform:   sess.Platform,
		ReceiptURL: sess.ReceiptURL,
		Form:       sess.Form,
		SaveInfo:   sess.SaveInfo,
		Lines:      lines,
		Pricing:    pricing.Summarize(sh.Cart.Total(), sess.Form.City),
		CanGoBack:  CanGoBack(sess.Step),
	}
	for _, l := range lines {
		if l.NeedsVariant() {
			v.PendingVariants = append(v.PendingVariants, l.Product.ID)
		}
	}
	if sess.Step == StepVariants && !sess.variantsReadyAt.IsZero() {
		at := sess.variantsReadyAt
		v.AutoAdvanceAt = &at
	}
	return v
}

func (s *Service) buildOrder(sh *Shopper, orderID string, form models.ShippingForm, platform Platform) models.Order {
	lines := sh.Cart.Lines()
	b := pricing.Summarize(sh.Cart.Total(), form.City)

	items := make([]models.OrderItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, models.OrderItem{
			OrderID:   orderID,
			ProductID: l.Product.ID,
			Name:      l.Product.Name,
			UnitPrice: l.UnitPrice(),
			Quantity:  l.Quantity,
			Machine:   l.Machine,
			VariantID: l.VariantID(),
			Variant:   VariantLabel(l.Variant),
		})
	}

	return models.Order{
		OrderID:       orderID,
		SessionID:     sh.ID,
		FirstName:     form.FirstName,
		LastName:      form.LastName,
		Email:         form.Email,
		Phone:         form.Phone,
		Address:       form.Address,
		City:          form.City,
		State:         form.State,
		Occupation:    form.Occupation,
		Platform:      string(platform),
		Subtotal:      b.Subtotal,
		Shipping:      b.Shipping,
		Total:         b.Total,
		Items:         items,
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusPending,
		CreatedAt:     s.now(),
	}
}

func (s *Service) snapshot(sh *Shopper, sess *Session, platform Platform) models.OrderSnapshot {
	lines := sh.Cart.Lines()
	b := pricing.Summarize(sh.Cart.Total(), sess.Form.City)

	items := make([]models.SnapshotItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, models.SnapshotItem{
			ProductID:  l.Product.ID,
			Name:       l.Product.Name,
			Variant:    VariantLabel(l.Variant),
			Machine:    l.Machine,
			Quantity:   l.Quantity,
			UnitPrice:  l.UnitPrice(),
			FinalPrice: l.LineTotal(),
		})
	}

	return models.OrderSnapshot{
		OrderID:       sess.OrderID,
		Total:         b.Total,
		Subtotal:      b.Subtotal,
		Shipping:      b.Shipping,
		PaymentMethod: string(platform),
		FormData:      sess.Form,
		CartItems:     items,
		CompletedAt:   s.now(),
	}
}

// VariantLabel describes a variant for order lines, e.g. "Whole Bean, 250g".
func VariantLabel(v *models.Variant) string {
	if v == nil {
		return ""
	}
	parts := []string{v.Name}
	for _, extra := range []string{v.Size, v.Weight} {
		if extra != "" && extra != v.Name {
			parts = append(parts, extra)
		}
	}
	return strings.Join(parts, ", ")
}
