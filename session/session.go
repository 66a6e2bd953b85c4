package session

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

const cookieName = "course_paid_session"

// Gate is a one-time browser-session capability proving a payment callback
// fired in this session. The marker lives only in a session cookie and is
// never persisted server-side. It carries no entitlement on its own; the
// callback path verifies the payment before setting it.
type Gate struct{}

func NewGate() *Gate {
	return &Gate{}
}

// MarkPaid sets the marker for the current browser session, carrying the
// provider order id so the confirmation view can show the order it belongs to.
func (g *Gate) MarkPaid(c *fiber.Ctx, orderID string) {
	c.Cookie(&fiber.Cookie{
		Name:        cookieName,
		Value:       orderID,
		HTTPOnly:    true,
		SameSite:    "Lax",
		SessionOnly: true,
	})
}

// ConsumeIfPaid atomically reads and clears the marker. It returns the order
// id and true only on the first call after MarkPaid; reloads, back-navigation
// and direct URL entry all see false.
func (g *Gate) ConsumeIfPaid(c *fiber.Ctx) (string, bool) {
	orderID := c.Cookies(cookieName)
	if orderID == "" {
		return "", false
	}

	c.Cookie(&fiber.Cookie{
		Name:     cookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return orderID, true
}
