package services

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"time"

	"busticket/internal/clock"
	"busticket/internal/domain"
	"busticket/internal/domain/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/hkdf"
)

const offerTokenInfo = "offer-token"

// OfferClaims binds a held offer to the booking that follows it.
type OfferClaims struct {
	JourneyID      int64    `json:"journey_id"`
	Origin         string   `json:"origin"`
	Destination    string   `json:"destination"`
	PassengerCount int      `json:"passenger_count"`
	TotalFare      int64    `json:"total_fare"`
	Seats          []string `json:"seats"`
	jwt.RegisteredClaims
}

// OfferTokens signs and verifies offer tokens with an HS256 key derived
// from the configured secret.
type OfferTokens struct {
	key   []byte
	clock clock.Clock
}

// NewOfferTokens derives the signing key. An empty secret gets a random
// one, so tokens only survive as long as the process.
func NewOfferTokens(secret string, c clock.Clock) (*OfferTokens, error) {
	ikm := []byte(secret)
	if len(ikm) == 0 {
		ikm = make([]byte, 32)
		if _, err := rand.Read(ikm); err != nil {
			return nil, fmt.Errorf("offer token secret: %w", err)
		}
	}
	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, ikm, nil, []byte(offerTokenInfo)), key); err != nil {
		return nil, fmt.Errorf("derive offer token key: %w", err)
	}
	return &OfferTokens{key: key, clock: clock.OrReal(c)}, nil
}

// Sign issues a token that expires with the offer's holds.
func (t *OfferTokens) Sign(o models.Offer, passengerCount int) (string, error) {
	now := t.clock.Now()
	claims := OfferClaims{
		JourneyID:      o.JourneyID,
		Origin:         o.Origin,
		Destination:    o.Destination,
		PassengerCount: passengerCount,
		TotalFare:      o.TotalFare,
		Seats:          o.AvailableSeatsList,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(time.UnixMilli(o.HoldExpiresAt)),
			Subject:   fmt.Sprintf("journey:%d", o.JourneyID),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.key)
}

func (t *OfferTokens) Verify(token string) (OfferClaims, error) {
	var claims OfferClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return t.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.clock.Now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return OfferClaims{}, domain.ValidationError{Field: "offer_token", Msg: "offer expired", Err: err}
		}
		return OfferClaims{}, domain.ValidationError{Field: "offer_token", Msg: "invalid offer token", Err: err}
	}
	return claims, nil
}

// Matches checks that the claims describe the same trip and party size.
func (c OfferClaims) Matches(journeyID int64, origin, destination string, passengers int) bool {
	return c.JourneyID == journeyID && c.Origin == origin && c.Destination == destination && c.PassengerCount == passengers
}
