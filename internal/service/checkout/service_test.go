package checkout

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"

	"storefront/internal/domain"
	"storefront/internal/events"
	"storefront/internal/payment"
	"storefront/internal/pricing"
)

type stubSessions struct {
	byCustomer       map[string]*domain.CheckoutSession
	nextID           int
	completed        []string
	updateErr        error
	failNextComplete bool
}

func newStubSessions() *stubSessions {
	return &stubSessions{byCustomer: map[string]*domain.CheckoutSession{}}
}

func (s *stubSessions) Create(_ context.Context, sess domain.CheckoutSession) (*domain.CheckoutSession, error) {
	s.nextID++
	sess.ID = fmt.Sprintf("sess-%d", s.nextID)
	sess.Status = domain.CheckoutActive
	s.byCustomer[sess.CustomerID] = &sess
	return &sess, nil
}

func (s *stubSessions) GetActiveByCustomer(_ context.Context, customerID string) (*domain.CheckoutSession, error) {
	sess, ok := s.byCustomer[customerID]
	if !ok || sess.Status != domain.CheckoutActive {
		return nil, domain.ErrNotFound
	}
	out := *sess
	return &out, nil
}

func (s *stubSessions) Update(_ context.Context, sess domain.CheckoutSession) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.byCustomer[sess.CustomerID] = &sess
	return nil
}

func (s *stubSessions) Complete(_ context.Context, id string) error {
	if s.failNextComplete {
		s.failNextComplete = false
		return errors.New("connection reset")
	}
	s.completed = append(s.completed, id)
	for _, sess := range s.byCustomer {
		if sess.ID == id {
			sess.Status = domain.CheckoutCompleted
		}
	}
	return nil
}

type stubCarts struct {
	cart    *domain.Cart
	err     error
	cleared []string
}

func (s *stubCarts) GetActiveByCustomer(context.Context, string) (*domain.Cart, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.cart, nil
}

func (s *stubCarts) Clear(_ context.Context, cartID string) error {
	s.cleared = append(s.cleared, cartID)
	return nil
}

type stubOrders struct {
	created   []domain.Order
	createErr error
	existing  *domain.Order
}

func (s *stubOrders) GetByCheckoutSession(_ context.Context, sessionID string) (*domain.Order, error) {
	for i := range s.created {
		if s.created[i].CheckoutSessionID == sessionID {
			return &s.created[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubOrders) Create(_ context.Context, o domain.Order) (*domain.Order, error) {
	if s.existing != nil {
		return s.existing, domain.ErrAlreadyExists
	}
	if s.createErr != nil {
		return nil, s.createErr
	}
	o.ID = fmt.Sprintf("order-%d", len(s.created)+1)
	s.created = append(s.created, o)
	return &o, nil
}

type stubCoupons struct {
	coupon   *domain.Coupon
	discount int64
	err      error
}

func (s *stubCoupons) Validate(context.Context, string, int64) (*domain.Coupon, int64, error) {
	return s.coupon, s.discount, s.err
}

type stubGateway struct {
	intents    []int64
	intentErr  error
	secret     string
	confirmed  []string
	confirmErr error
	card       payment.CardInfo
}

func (s *stubGateway) CreateIntent(_ context.Context, amountCents int64, _ string) (payment.Intent, error) {
	if s.intentErr != nil {
		return payment.Intent{}, s.intentErr
	}
	s.intents = append(s.intents, amountCents)
	return payment.Intent{ClientSecret: s.secret}, nil
}

func (s *stubGateway) Confirm(_ context.Context, clientSecret string, _ payment.Card, _ string) (payment.CardInfo, error) {
	if s.confirmErr != nil {
		return payment.CardInfo{}, s.confirmErr
	}
	s.confirmed = append(s.confirmed, clientSecret)
	return s.card, nil
}

type stubPublisher struct {
	published []events.Envelope
}

func (s *stubPublisher) Publish(_ context.Context, e events.Envelope) error {
	s.published = append(s.published, e)
	return nil
}

type staticRates struct{ rate decimal.Decimal }

func (s staticRates) Resolve(context.Context, string, string) (decimal.Decimal, error) {
	return s.rate, nil
}

func testCart() *domain.Cart {
	return &domain.Cart{
		ID:         "cart-1",
		CustomerID: "cust-1",
		Currency:   "USD",
		Lines: []domain.CartLine{
			{ProductID: "p1", Name: "Desk", Quantity: 1, UnitPriceCents: 120000, TotalCents: 120000},
			{ProductID: "p2", Name: "Lamp", Quantity: 2, UnitPriceCents: 15000, TotalCents: 30000},
		},
	}
}

func testPolicy() pricing.Policy {
	return pricing.Policy{
		FreeShippingThresholdCents: 200000,
		ShippingCostCents:          10000,
		MinChargeCents:             50,
		BaseCurrency:               "USD",
	}
}

type fixture struct {
	svc      *Service
	sessions *stubSessions
	carts    *stubCarts
	orders   *stubOrders
	coupons  *stubCoupons
	gateway  *stubGateway
	pub      *stubPublisher
}

func newFixture() *fixture {
	f := &fixture{
		sessions: newStubSessions(),
		carts:    &stubCarts{cart: testCart()},
		orders:   &stubOrders{},
		coupons:  &stubCoupons{},
		gateway:  &stubGateway{secret: "cs_test_1", card: payment.CardInfo{Brand: "visa", Last4: "4242"}},
		pub:      &stubPublisher{},
	}
	f.svc = New(f.sessions, f.carts, f.orders, f.coupons, f.gateway, nil, f.pub,
		Config{Policy: testPolicy()}, nil)
	return f
}

func validAddress() AddressInput {
	return AddressInput{
		RecipientName:  "Ada Lovelace",
		Street:         "1 Analytical Way",
		City:           "London",
		PostalCode:     "EC1",
		Country:        "GB",
		RecipientPhone: "+44 20 0000",
	}
}

// toPayment walks a fresh session to the payment step.
func (f *fixture) toPayment(t *testing.T) *domain.CheckoutSession {
	t.Helper()
	ctx := context.Background()
	if _, err := f.svc.Start(ctx, "cust-1"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := f.svc.SetShippingAddress(ctx, "cust-1", validAddress()); err != nil {
		t.Fatalf("set address: %v", err)
	}
	if _, err := f.svc.Advance(ctx, "cust-1"); err != nil {
		t.Fatalf("advance to review: %v", err)
	}
	sess, err := f.svc.Advance(ctx, "cust-1")
	if err != nil {
		t.Fatalf("advance to payment: %v", err)
	}
	return sess
}

func TestStartRequiresNonEmptyCart(t *testing.T) {
	f := newFixture()
	f.carts.cart = &domain.Cart{ID: "cart-1", CustomerID: "cust-1"}

	if _, err := f.svc.Start(context.Background(), "cust-1"); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestStartReusesActiveSession(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first, err := f.svc.Start(ctx, "cust-1")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if first.IdempotencyKey == "" {
		t.Fatal("expected idempotency key on new session")
	}
	second, err := f.svc.Start(ctx, "cust-1")
	if err != nil {
		t.Fatalf("second start: %v", err)
	}
	if second.ID != first.ID || second.IdempotencyKey != first.IdempotencyKey {
		t.Fatalf("expected the same session back, got %s vs %s", second.ID, first.ID)
	}
}

func TestGetWithoutSession(t *testing.T) {
	f := newFixture()
	if _, err := f.svc.Get(context.Background(), "cust-1"); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestAdvanceShippingValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	if _, err := f.svc.Start(ctx, "cust-1"); err != nil {
		t.Fatalf("start: %v", err)
	}

	in := validAddress()
	in.City = ""
	in.RecipientPhone = "  "
	if _, err := f.svc.SetShippingAddress(ctx, "cust-1", in); err != nil {
		t.Fatalf("set address: %v", err)
	}

	_, err := f.svc.Advance(ctx, "cust-1")
	var fieldErrs FieldErrors
	if !errors.As(err, &fieldErrs) {
		t.Fatalf("expected FieldErrors, got %v", err)
	}
	if len(fieldErrs) != 2 {
		t.Fatalf("expected 2 field errors, got %v", fieldErrs)
	}
	for _, field := range []string{"city", "recipientPhone"} {
		if fieldErrs[field] == "" {
			t.Fatalf("expected error for %s, got %v", field, fieldErrs)
		}
	}

	// Fixing one field leaves only the other reported.
	in.City = "London"
	if _, err := f.svc.SetShippingAddress(ctx, "cust-1", in); err != nil {
		t.Fatalf("set address: %v", err)
	}
	_, err = f.svc.Advance(ctx, "cust-1")
	if !errors.As(err, &fieldErrs) || len(fieldErrs) != 1 || fieldErrs["recipientPhone"] == "" {
		t.Fatalf("expected only recipientPhone error, got %v", err)
	}
}

func TestUseSavedAddressFillsShippingForm(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	if _, err := f.svc.Start(ctx, "cust-1"); err != nil {
		t.Fatalf("start: %v", err)
	}

	customer := &domain.Customer{
		ID: "cust-1",
		Addresses: []domain.Address{{
			ID:             "addr-1",
			RecipientName:  "Ada Lovelace",
			Street:         "1 Analytical Way",
			City:           "London",
			PostalCode:     "EC1",
			Country:        "GB",
			RecipientPhone: "+44 20 0000",
		}},
	}
	sess, err := f.svc.UseSavedAddress(ctx, customer, "addr-1")
	if err != nil {
		t.Fatalf("use saved address: %v", err)
	}
	if sess.ShippingAddress.Street != "1 Analytical Way" || sess.ShippingAddress.ID != "" {
		t.Fatalf("unexpected shipping address %+v", sess.ShippingAddress)
	}
	if _, err := f.svc.Advance(ctx, "cust-1"); err != nil {
		t.Fatalf("advance after saved address: %v", err)
	}

	if _, err := f.svc.UseSavedAddress(ctx, customer, "addr-missing"); err == nil {
		t.Fatal("expected error for unknown saved address")
	}
}

func TestAdvanceReviewNegotiatesIntent(t *testing.T) {
	f := newFixture()
	sess := f.toPayment(t)

	if sess.Step != domain.StepPayment {
		t.Fatalf("expected payment step, got %d", sess.Step)
	}
	if sess.ClientSecret != "cs_test_1" {
		t.Fatalf("expected stored client secret, got %q", sess.ClientSecret)
	}
	// Subtotal 150000 is under the free shipping threshold.
	if len(f.gateway.intents) != 1 || f.gateway.intents[0] != 160000 {
		t.Fatalf("expected intent for 160000, got %v", f.gateway.intents)
	}

	if _, err := f.svc.Advance(context.Background(), "cust-1"); err == nil {
		t.Fatal("expected error advancing past the payment step")
	}
}

func TestAdvanceBlocksBelowMinimumCharge(t *testing.T) {
	f := newFixture()
	f.carts.cart.Lines = []domain.CartLine{
		{ProductID: "p1", Name: "Sticker", Quantity: 1, UnitPriceCents: 250030, TotalCents: 250030},
	}
	f.coupons.coupon = &domain.Coupon{Code: "huge", Type: domain.DiscountFixed, Value: 250000}
	f.coupons.discount = 250000
	ctx := context.Background()

	if _, err := f.svc.Start(ctx, "cust-1"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := f.svc.SetShippingAddress(ctx, "cust-1", validAddress()); err != nil {
		t.Fatalf("set address: %v", err)
	}
	if _, err := f.svc.Advance(ctx, "cust-1"); err != nil {
		t.Fatalf("advance to review: %v", err)
	}
	if _, err := f.svc.ApplyCoupon(ctx, "cust-1", "huge"); err != nil {
		t.Fatalf("apply coupon: %v", err)
	}

	// 250030 qualifies for free shipping; the discount leaves 30 cents.
	if _, err := f.svc.Advance(ctx, "cust-1"); !errors.Is(err, ErrBelowMinimumCharge) {
		t.Fatalf("expected ErrBelowMinimumCharge, got %v", err)
	}
	if len(f.gateway.intents) != 0 {
		t.Fatal("no intent should be negotiated for a blocked total")
	}
}

func TestBackPreservesData(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	if _, err := f.svc.Start(ctx, "cust-1"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := f.svc.SetShippingAddress(ctx, "cust-1", validAddress()); err != nil {
		t.Fatalf("set address: %v", err)
	}
	if _, err := f.svc.Advance(ctx, "cust-1"); err != nil {
		t.Fatalf("advance: %v", err)
	}

	sess, err := f.svc.Back(ctx, "cust-1")
	if err != nil {
		t.Fatalf("back: %v", err)
	}
	if sess.Step != domain.StepShipping {
		t.Fatalf("expected shipping step, got %d", sess.Step)
	}
	if sess.ShippingAddress.Street == "" {
		t.Fatal("expected shipping data preserved after going back")
	}

	// Back at the first step stays put.
	sess, err = f.svc.Back(ctx, "cust-1")
	if err != nil || sess.Step != domain.StepShipping {
		t.Fatalf("expected to stay at shipping, got step %d err %v", sess.Step, err)
	}
}

func TestApplyCouponLocksSession(t *testing.T) {
	f := newFixture()
	f.coupons.coupon = &domain.Coupon{Code: "save10", Type: domain.DiscountPercentage, Value: 10}
	f.coupons.discount = 15000
	ctx := context.Background()
	if _, err := f.svc.Start(ctx, "cust-1"); err != nil {
		t.Fatalf("start: %v", err)
	}

	sess, err := f.svc.ApplyCoupon(ctx, "cust-1", "save10")
	if err != nil {
		t.Fatalf("apply coupon: %v", err)
	}
	if sess.Coupon == nil || sess.Coupon.Code != "save10" || sess.DiscountCents != 15000 {
		t.Fatalf("unexpected session after apply: %+v", sess)
	}

	if _, err := f.svc.ApplyCoupon(ctx, "cust-1", "other"); !errors.Is(err, ErrCouponLocked) {
		t.Fatalf("expected ErrCouponLocked, got %v", err)
	}
}

func TestApplyCouponFailureClearsDiscount(t *testing.T) {
	f := newFixture()
	f.coupons.err = errors.New("coupon is not valid")
	ctx := context.Background()
	if _, err := f.svc.Start(ctx, "cust-1"); err != nil {
		t.Fatalf("start: %v", err)
	}
	// A discount lingering without a locked coupon must be voided by a
	// failed validation.
	f.sessions.byCustomer["cust-1"].DiscountCents = 5000

	if _, err := f.svc.ApplyCoupon(ctx, "cust-1", "expired"); err == nil {
		t.Fatal("expected validation error")
	}
	if f.sessions.byCustomer["cust-1"].DiscountCents != 0 {
		t.Fatalf("expected discount cleared, got %d", f.sessions.byCustomer["cust-1"].DiscountCents)
	}
}

func TestQuoteConvertsDisplayCurrency(t *testing.T) {
	f := newFixture()
	f.svc = New(f.sessions, f.carts, f.orders, f.coupons, f.gateway,
		staticRates{rate: decimal.NewFromFloat(0.5)}, f.pub,
		Config{Policy: testPolicy(), DisplayCurrency: "EUR"}, nil)
	ctx := context.Background()
	if _, err := f.svc.Start(ctx, "cust-1"); err != nil {
		t.Fatalf("start: %v", err)
	}

	snap, err := f.svc.Quote(ctx, "cust-1")
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if snap.Currency != "EUR" {
		t.Fatalf("expected EUR, got %s", snap.Currency)
	}
	if snap.SubtotalCents != 75000 || snap.ShippingCents != 5000 || snap.TotalCents != 80000 {
		t.Fatalf("unexpected converted snapshot %+v", snap)
	}
}

func TestPlaceOrderGuards(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	card := payment.Card{Number: "4242424242424242", ExpMonth: 12, ExpYear: 2030, CVC: "123"}

	if _, err := f.svc.PlaceOrder(ctx, "cust-1", card, "Ada"); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}

	if _, err := f.svc.Start(ctx, "cust-1"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := f.svc.PlaceOrder(ctx, "cust-1", card, "Ada"); err == nil {
		t.Fatal("expected error placing an order at the shipping step")
	}

	// Force the payment step without a negotiated secret.
	f.sessions.byCustomer["cust-1"].Step = domain.StepPayment
	f.sessions.byCustomer["cust-1"].ClientSecret = ""
	if _, err := f.svc.PlaceOrder(ctx, "cust-1", card, "Ada"); !errors.Is(err, ErrPaymentNotReady) {
		t.Fatalf("expected ErrPaymentNotReady, got %v", err)
	}
}

func TestPlaceOrderSuccess(t *testing.T) {
	f := newFixture()
	f.toPayment(t)
	ctx := context.Background()
	card := payment.Card{Number: "4242424242424242", ExpMonth: 12, ExpYear: 2030, CVC: "123"}

	order, err := f.svc.PlaceOrder(ctx, "cust-1", card, "Ada Lovelace")
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	if order.Number == "" || order.Status != domain.OrderPending {
		t.Fatalf("unexpected order %+v", order)
	}
	if len(order.Items) != 2 || order.Items[0].Name != "Desk" {
		t.Fatalf("unexpected items %+v", order.Items)
	}
	if order.Payment.Brand != "visa" || order.Payment.Last4 != "4242" {
		t.Fatalf("unexpected payment info %+v", order.Payment)
	}
	if order.Pricing.TotalCents != 160000 {
		t.Fatalf("unexpected total %d", order.Pricing.TotalCents)
	}
	if order.ShippingAddress.Street != "1 Analytical Way" {
		t.Fatalf("unexpected shipping address %+v", order.ShippingAddress)
	}

	if len(f.gateway.confirmed) != 1 || f.gateway.confirmed[0] != "cs_test_1" {
		t.Fatalf("expected confirm against the stored secret, got %v", f.gateway.confirmed)
	}
	if len(f.carts.cleared) != 1 || f.carts.cleared[0] != "cart-1" {
		t.Fatalf("expected cart cleared, got %v", f.carts.cleared)
	}
	if len(f.sessions.completed) != 1 {
		t.Fatalf("expected session completed, got %v", f.sessions.completed)
	}
	if len(f.pub.published) != 1 || f.pub.published[0].Type != events.TypeOrderCreated {
		t.Fatalf("expected order.created event, got %v", f.pub.published)
	}
}

func TestPlaceOrderGatewayDecline(t *testing.T) {
	f := newFixture()
	f.toPayment(t)
	f.gateway.confirmErr = &payment.GatewayError{Message: "Your card was declined."}
	card := payment.Card{Number: "4000000000000002", ExpMonth: 12, ExpYear: 2030, CVC: "123"}

	_, err := f.svc.PlaceOrder(context.Background(), "cust-1", card, "Ada")
	var gwErr *payment.GatewayError
	if !errors.As(err, &gwErr) || gwErr.Message != "Your card was declined." {
		t.Fatalf("expected the gateway message verbatim, got %v", err)
	}
	if len(f.orders.created) != 0 {
		t.Fatal("no order may exist after a declined payment")
	}
	if len(f.carts.cleared) != 0 {
		t.Fatal("cart must survive a declined payment")
	}
}

func TestPlaceOrderPersistenceFailureKeepsCart(t *testing.T) {
	f := newFixture()
	f.toPayment(t)
	f.orders.createErr = errors.New("connection reset")
	card := payment.Card{Number: "4242424242424242", ExpMonth: 12, ExpYear: 2030, CVC: "123"}

	if _, err := f.svc.PlaceOrder(context.Background(), "cust-1", card, "Ada"); err == nil {
		t.Fatal("expected the insert error surfaced")
	}
	if len(f.carts.cleared) != 0 {
		t.Fatal("cart must survive a failed order insert")
	}
	if len(f.sessions.completed) != 0 {
		t.Fatal("session must stay active after a failed insert")
	}
	if len(f.pub.published) != 0 {
		t.Fatal("no event for an order that was never created")
	}
}

func TestPlaceOrderReplayReturnsExistingOrder(t *testing.T) {
	f := newFixture()
	f.toPayment(t)
	f.orders.existing = &domain.Order{ID: "order-1", Status: domain.OrderPending}
	card := payment.Card{Number: "4242424242424242", ExpMonth: 12, ExpYear: 2030, CVC: "123"}

	order, err := f.svc.PlaceOrder(context.Background(), "cust-1", card, "Ada")
	if err != nil {
		t.Fatalf("replay should succeed, got %v", err)
	}
	if order.ID != "order-1" {
		t.Fatalf("expected the already-created order, got %+v", order)
	}
}

func TestApplyCouponRejectedAtPaymentStep(t *testing.T) {
	f := newFixture()
	f.coupons.coupon = &domain.Coupon{Code: "save50", Type: domain.DiscountFixed, Value: 50000}
	f.coupons.discount = 50000
	f.toPayment(t)
	ctx := context.Background()

	if _, err := f.svc.ApplyCoupon(ctx, "cust-1", "save50"); !errors.Is(err, ErrCheckoutLocked) {
		t.Fatalf("expected ErrCheckoutLocked, got %v", err)
	}

	card := payment.Card{Number: "4242424242424242", ExpMonth: 12, ExpYear: 2030, CVC: "123"}
	order, err := f.svc.PlaceOrder(ctx, "cust-1", card, "Ada Lovelace")
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	if order.Pricing.DiscountCents != 0 || order.Pricing.TotalCents != 160000 {
		t.Fatalf("recorded total must match the negotiated intent, got %+v", order.Pricing)
	}
}

func TestPlaceOrderRejectsDriftedTotal(t *testing.T) {
	f := newFixture()
	f.toPayment(t)
	ctx := context.Background()
	// Another tab adds a line after the intent was negotiated.
	f.carts.cart.Lines = append(f.carts.cart.Lines,
		domain.CartLine{ProductID: "p3", Name: "Chair", Quantity: 1, UnitPriceCents: 45000, TotalCents: 45000})
	card := payment.Card{Number: "4242424242424242", ExpMonth: 12, ExpYear: 2030, CVC: "123"}

	if _, err := f.svc.PlaceOrder(ctx, "cust-1", card, "Ada Lovelace"); !errors.Is(err, ErrStaleIntent) {
		t.Fatalf("expected ErrStaleIntent, got %v", err)
	}
	if len(f.gateway.confirmed) != 0 {
		t.Fatalf("card must not be charged for a drifted total, got %v", f.gateway.confirmed)
	}

	sess, err := f.svc.Get(ctx, "cust-1")
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if sess.Step != domain.StepReview || sess.ClientSecret != "" {
		t.Fatalf("session should be back at review with the secret dropped, got %+v", sess)
	}
}

func TestPlaceOrderRetryAfterCompleteFailure(t *testing.T) {
	f := newFixture()
	f.toPayment(t)
	f.sessions.failNextComplete = true
	ctx := context.Background()
	card := payment.Card{Number: "4242424242424242", ExpMonth: 12, ExpYear: 2030, CVC: "123"}

	first, err := f.svc.PlaceOrder(ctx, "cust-1", card, "Ada Lovelace")
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	// The cart was already cleared before the session update failed.
	f.carts.cart.Lines = nil

	second, err := f.svc.PlaceOrder(ctx, "cust-1", card, "Ada Lovelace")
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("retry must return the original order, got %q and %q", first.ID, second.ID)
	}
	if len(f.gateway.confirmed) != 1 {
		t.Fatalf("card must be charged exactly once, got %v", f.gateway.confirmed)
	}
	if len(f.sessions.completed) != 1 {
		t.Fatalf("expected session completed on retry, got %v", f.sessions.completed)
	}
}
