// File: database/repository/client/client_mongo.go
package clientRepo

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"chairside/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func (r *mongoClientRepo) GetByID(ctx context.Context, id string) (*models.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var client models.Client
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&client); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("client %s not found", id)
		}
		return nil, fmt.Errorf("find error: %w", err)
	}
	return &client, nil
}

func (r *mongoClientRepo) FindOrCreate(ctx context.Context, ref models.ClientRef) (*models.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if ref.ID != "" {
		return r.GetByID(ctx, ref.ID)
	}

	// 1. Exact email match.
	if email := strings.ToLower(strings.TrimSpace(ref.Email)); email != "" {
		var found models.Client
		err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&found)
		if err == nil {
			return &found, nil
		}
		if err != mongo.ErrNoDocuments {
			return nil, fmt.Errorf("email lookup failed: %w", err)
		}
	}

	// 2. Exact normalized-phone-digit match.
	digits := PhoneDigits(ref.Mobile)
	if digits != "" {
		var found models.Client
		err := r.coll.FindOne(ctx, bson.M{"mobile_digits": digits}).Decode(&found)
		if err == nil {
			return &found, nil
		}
		if err != mongo.ErrNoDocuments {
			return nil, fmt.Errorf("phone lookup failed: %w", err)
		}
	}

	// 3. Exact first+last name, checked across every same-name record.
	// Without a phone number on all sides there is nothing to disambiguate
	// with, so this is a hard stop rather than a silent duplicate create.
	first := strings.TrimSpace(ref.FirstName)
	last := strings.TrimSpace(ref.LastName)
	nameFilter := bson.M{
		"first_name": bson.M{"$regex": "^" + escapeRegex(first) + "$", "$options": "i"},
		"last_name":  bson.M{"$regex": "^" + escapeRegex(last) + "$", "$options": "i"},
	}
	cursor, err := r.coll.Find(ctx, nameFilter)
	if err != nil {
		return nil, fmt.Errorf("name lookup failed: %w", err)
	}
	defer cursor.Close(ctx)

	var sameName []models.Client
	if err := cursor.All(ctx, &sameName); err != nil {
		return nil, fmt.Errorf("error decoding name matches: %w", err)
	}
	if err := disambiguateByPhone(digits, sameName); err != nil {
		return nil, err
	}

	created := models.Client{
		ID:        uuid.New().String(),
		FirstName: first,
		LastName:  last,
		Email:     strings.ToLower(strings.TrimSpace(ref.Email)),
		Mobile:    strings.TrimSpace(ref.Mobile),
		CreatedAt: time.Now().UTC(),
	}
	doc := bson.M{
		"id":            created.ID,
		"first_name":    created.FirstName,
		"last_name":     created.LastName,
		"email":         created.Email,
		"mobile":        created.Mobile,
		"mobile_digits": digits,
		"created_at":    created.CreatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return &created, nil
}

// disambiguateByPhone decides whether same-name records are distinct people.
// The request and every existing record must all carry phone digits;
// otherwise at least one pair is indistinguishable and creating a new record
// would risk a silent duplicate. Matching digits were already resolved by
// the exact-phone lookup, so surviving digits here are known to differ.
func disambiguateByPhone(requestDigits string, matches []models.Client) error {
	if len(matches) == 0 {
		return nil
	}
	if requestDigits == "" {
		return ErrAmbiguousName
	}
	for _, m := range matches {
		if PhoneDigits(m.Mobile) == "" {
			return ErrAmbiguousName
		}
	}
	return nil
}

// PhoneDigits strips a phone number down to its digits for exact matching.
func PhoneDigits(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func escapeRegex(s string) string {
	special := `\.+*?()|[]{}^$`
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(special, r) {
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
