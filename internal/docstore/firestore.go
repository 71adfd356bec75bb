// README: Firestore-backed document store implementation.
package docstore

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type firestoreStore struct {
	client *firestore.Client
}

// NewFirestore wraps a Firestore client as a Store.
func NewFirestore(client *firestore.Client) Store {
	return &firestoreStore{client: client}
}

func (s *firestoreStore) Collection(name string) Collection {
	return &firestoreCollection{ref: s.client.Collection(name)}
}

type firestoreCollection struct {
	ref *firestore.CollectionRef
}

func (c *firestoreCollection) Add(ctx context.Context, data map[string]any) (string, error) {
	doc, _, err := c.ref.Add(ctx, data)
	if err != nil {
		return "", err
	}
	return doc.ID, nil
}

func (c *firestoreCollection) Get(ctx context.Context, id string) (map[string]any, error) {
	snap, err := c.ref.Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return snap.Data(), nil
}

func (c *firestoreCollection) Set(ctx context.Context, id string, data map[string]any) error {
	_, err := c.ref.Doc(id).Set(ctx, data)
	return err
}

func (c *firestoreCollection) Update(ctx context.Context, id string, fields map[string]any) error {
	updates := make([]firestore.Update, 0, len(fields))
	for k, v := range fields {
		updates = append(updates, firestore.Update{Path: k, Value: v})
	}
	_, err := c.ref.Doc(id).Update(ctx, updates)
	if status.Code(err) == codes.NotFound {
		return ErrNotFound
	}
	return err
}

func (c *firestoreCollection) Append(ctx context.Context, id string, field string, values ...any) error {
	_, err := c.ref.Doc(id).Update(ctx, []firestore.Update{
		{Path: field, Value: firestore.ArrayUnion(values...)},
	})
	if status.Code(err) == codes.NotFound {
		return ErrNotFound
	}
	return err
}

func (c *firestoreCollection) Query(ctx context.Context, field string, value any) ([]Document, error) {
	snaps, err := c.ref.Where(field, "==", value).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	docs := make([]Document, 0, len(snaps))
	for _, snap := range snaps {
		docs = append(docs, Document{ID: snap.Ref.ID, Data: snap.Data()})
	}
	return docs, nil
}
