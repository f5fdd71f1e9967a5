package adapter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FSDocumentStore stores proofs and receipts on the local filesystem.
// It implements port.DocumentStore.
type FSDocumentStore struct {
	root string
}

// NewFSDocumentStore creates a store rooted at the given directory,
// creating its proof and receipt subdirectories if needed.
func NewFSDocumentStore(root string) (*FSDocumentStore, error) {
	for _, sub := range []string{"proofs", "receipts"} {
		if err := os.MkdirAll(filepath.Join(root, sub), 0o755); err != nil {
			return nil, fmt.Errorf("create document dir %s: %w", sub, err)
		}
	}
	return &FSDocumentStore{root: root}, nil
}

// StoreProof persists an uploaded payment proof.
func (s *FSDocumentStore) StoreProof(_ context.Context, name string, content []byte) (string, error) {
	return s.write("proofs", name, content)
}

// StoreReceipt persists a generated receipt.
func (s *FSDocumentStore) StoreReceipt(_ context.Context, name string, content []byte) (string, error) {
	return s.write("receipts", name, content)
}

func (s *FSDocumentStore) write(sub, name string, content []byte) (string, error) {
	// filepath.Base strips any path components from client-supplied names.
	path := filepath.Join(s.root, sub, filepath.Base(name))
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("write document %s: %w", name, err)
	}
	return path, nil
}
