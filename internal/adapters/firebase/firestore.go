// Package firebase talks to Cloud Firestore and the Realtime Database over
// their REST interfaces, authenticated with the signed-in user's ID token.
package firebase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/gothub-kernel/internal/adapters/httpapi"
	"github.com/bnema/gothub-kernel/internal/domain"
	"github.com/bnema/gothub-kernel/internal/ports"
)

const (
	fieldCreatedAt     = "created_at"
	fieldUpdatedAt     = "updated_at"
	fieldChats         = "num_chats"
	fieldCharactersIn  = "num_characters_in"
	fieldCharactersOut = "num_characters_out"
	fieldImages        = "num_images"
)

// Firestore is a ports.UsageStore backed by Firestore documents named
// {collection}/{user id}.
type Firestore struct {
	BaseURL        string
	ProjectID      string
	IDToken        string
	HTTPClient     *http.Client
	RequestTimeout time.Duration
}

var _ ports.UsageStore = (*Firestore)(nil)

type value struct {
	IntegerValue   *string `json:"integerValue,omitempty"`
	TimestampValue *string `json:"timestampValue,omitempty"`
}

type document struct {
	Name   string           `json:"name,omitempty"`
	Fields map[string]value `json:"fields"`
}

type fieldTransform struct {
	FieldPath        string `json:"fieldPath"`
	Increment        *value `json:"increment,omitempty"`
	SetToServerValue string `json:"setToServerValue,omitempty"`
}

type write struct {
	Transform struct {
		Document        string           `json:"document"`
		FieldTransforms []fieldTransform `json:"fieldTransforms"`
	} `json:"transform"`
}

type commitRequest struct {
	Writes []write `json:"writes"`
}

func (f *Firestore) Get(ctx context.Context, key domain.UsageKey) (domain.UsageRecord, error) {
	endpoint, err := f.documentURL(key)
	if err != nil {
		return domain.UsageRecord{}, err
	}

	var doc document
	if err := f.requester().DoJSON(ctx, http.MethodGet, endpoint, f.header(), nil, &doc); err != nil {
		if httpapi.HasStatus(err, http.StatusNotFound) {
			return domain.UsageRecord{}, fmt.Errorf("get %s: %w", key, domain.ErrRecordNotFound)
		}
		return domain.UsageRecord{}, fmt.Errorf("get %s: %w", key, err)
	}

	return decodeRecord(doc.Fields)
}

func (f *Firestore) Create(ctx context.Context, key domain.UsageKey, record domain.UsageRecord) error {
	endpoint, err := f.documentURL(key)
	if err != nil {
		return err
	}

	if err := f.requester().DoJSON(ctx, http.MethodPatch, endpoint, f.header(), document{Fields: encodeRecord(record)}, nil); err != nil {
		return fmt.Errorf("create %s: %w", key, err)
	}
	return nil
}

// Increment adds delta server-side with field transforms, so concurrent
// writers never lose counts. updated_at takes the server's request time.
func (f *Firestore) Increment(ctx context.Context, key domain.UsageKey, delta domain.UsageDelta) error {
	if err := f.validate(key); err != nil {
		return err
	}
	endpoint, err := httpapi.BuildURL(f.BaseURL, "v1/"+f.databasePath()+"/documents:commit")
	if err != nil {
		return err
	}

	var w write
	w.Transform.Document = f.databasePath() + "/documents/" + key.Capability.Collection() + "/" + key.UserID
	for _, field := range []struct {
		path  string
		value int64
	}{
		{fieldChats, delta.Chats},
		{fieldCharactersIn, delta.CharactersIn},
		{fieldCharactersOut, delta.CharactersOut},
		{fieldImages, delta.Images},
	} {
		if field.value == 0 {
			continue
		}
		w.Transform.FieldTransforms = append(w.Transform.FieldTransforms, fieldTransform{
			FieldPath: field.path,
			Increment: integerValue(field.value),
		})
	}
	w.Transform.FieldTransforms = append(w.Transform.FieldTransforms, fieldTransform{
		FieldPath:        fieldUpdatedAt,
		SetToServerValue: "REQUEST_TIME",
	})

	if err := f.requester().DoJSON(ctx, http.MethodPost, endpoint, f.header(), commitRequest{Writes: []write{w}}, nil); err != nil {
		return fmt.Errorf("increment %s: %w", key, err)
	}
	return nil
}

func (f *Firestore) databasePath() string {
	return "projects/" + url.PathEscape(f.ProjectID) + "/databases/(default)"
}

func (f *Firestore) documentURL(key domain.UsageKey) (string, error) {
	if err := f.validate(key); err != nil {
		return "", err
	}
	return httpapi.BuildURL(f.BaseURL, "v1/"+f.databasePath()+"/documents/"+key.Capability.Collection()+"/"+url.PathEscape(key.UserID))
}

func (f *Firestore) validate(key domain.UsageKey) error {
	if f.ProjectID == "" {
		return fmt.Errorf("firestore project id: %w", domain.ErrConfigMissing)
	}
	if f.IDToken == "" {
		return fmt.Errorf("firestore id token: %w", domain.ErrCredentialMissing)
	}
	if key.UserID == "" {
		return errors.New("usage key user id is required")
	}
	// The id is a single document name in every request.
	if strings.Contains(key.UserID, "/") {
		return fmt.Errorf("usage key user id %q must not contain /", key.UserID)
	}
	if !key.Capability.Valid() {
		return fmt.Errorf("unknown capability %q", key.Capability)
	}
	return nil
}

func (f *Firestore) header() http.Header {
	header := http.Header{}
	header.Set("Authorization", "Bearer "+f.IDToken)
	return header
}

func (f *Firestore) requester() httpapi.Requester {
	return httpapi.Requester{Client: f.HTTPClient, Timeout: f.RequestTimeout}
}

func integerValue(v int64) *value {
	s := strconv.FormatInt(v, 10)
	return &value{IntegerValue: &s}
}

func timestampValue(t time.Time) value {
	s := t.UTC().Format(time.RFC3339Nano)
	return value{TimestampValue: &s}
}

func encodeRecord(record domain.UsageRecord) map[string]value {
	return map[string]value{
		fieldCreatedAt:     timestampValue(record.CreatedAt),
		fieldUpdatedAt:     timestampValue(record.UpdatedAt),
		fieldChats:         *integerValue(record.Chats),
		fieldCharactersIn:  *integerValue(record.CharactersIn),
		fieldCharactersOut: *integerValue(record.CharactersOut),
		fieldImages:        *integerValue(record.Images),
	}
}

func decodeRecord(fields map[string]value) (domain.UsageRecord, error) {
	var record domain.UsageRecord
	var err error

	if record.CreatedAt, err = decodeTime(fields, fieldCreatedAt); err != nil {
		return domain.UsageRecord{}, err
	}
	if record.UpdatedAt, err = decodeTime(fields, fieldUpdatedAt); err != nil {
		return domain.UsageRecord{}, err
	}
	for name, target := range map[string]*int64{
		fieldChats:         &record.Chats,
		fieldCharactersIn:  &record.CharactersIn,
		fieldCharactersOut: &record.CharactersOut,
		fieldImages:        &record.Images,
	} {
		if *target, err = decodeInt(fields, name); err != nil {
			return domain.UsageRecord{}, err
		}
	}
	return record, nil
}

func decodeInt(fields map[string]value, name string) (int64, error) {
	v, ok := fields[name]
	if !ok || v.IntegerValue == nil {
		return 0, nil
	}
	n, err := strconv.ParseInt(*v.IntegerValue, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("decode %s: %w", name, err)
	}
	return n, nil
}

func decodeTime(fields map[string]value, name string) (time.Time, error) {
	v, ok := fields[name]
	if !ok || v.TimestampValue == nil {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, *v.TimestampValue)
	if err != nil {
		return time.Time{}, fmt.Errorf("decode %s: %w", name, err)
	}
	return t.UTC(), nil
}
