/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called Buckets.
Each bucket contains only one type of object, stored under
"<name>:<key>". A bucket can be registered with the query router,
which exposes its content to abci queries by key.
*/
package orm

import (
	"fmt"
	"regexp"

	"github.com/blueshift-gg/ledger"
	"github.com/blueshift-gg/ledger/errors"
)

var (
	isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString
)

// Model is a persistent value that can check its own consistency.
type Model interface {
	ledger.Persistent
	Validate() error
}

// Bucket is a prefixed subspace of the DB. All elements are of the type
// produced by the model constructor.
type Bucket struct {
	name     string
	prefix   []byte
	newModel func() Model
}

var _ ledger.QueryHandler = Bucket{}

// NewBucket creates a bucket to store data
func NewBucket(name string, newModel func() Model) Bucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("Illegal bucket: %s", name))
	}
	return Bucket{
		name:     name,
		prefix:   append([]byte(name), ':'),
		newModel: newModel,
	}
}

// Name returns the prefix name of the bucket.
func (b Bucket) Name() string {
	return b.name
}

// Register registers this Bucket under "/<name>" for queries. You can
// define a name here which is different than the bucket name used to
// prefix the data.
func (b Bucket) Register(name string, r ledger.QueryRouter) {
	if name == "" {
		name = b.name
	}
	r.Register("/"+name, b)
}

// Query returns the model stored under the given key, or nothing on a miss.
func (b Bucket) Query(db ledger.ReadOnlyKVStore, data []byte) ([]ledger.Model, error) {
	key := b.DBKey(data)
	value, err := db.Get(key)
	if err != nil {
		return nil, err
	}
	// return nothing on miss
	if value == nil {
		return nil, nil
	}
	return []ledger.Model{ledger.Pair(key, value)}, nil
}

// DBKey is the full key we store in the db, including prefix
// We copy into a new array rather than use append, as we don't
// want consecutive calls to overwrite the same byte array.
func (b Bucket) DBKey(key []byte) []byte {
	l := len(b.prefix)
	out := make([]byte, l+len(key))
	copy(out, b.prefix)
	copy(out[l:], key)
	return out
}

// One loads the model stored under key into dst. ErrNotFound is returned
// when there is no such entry.
func (b Bucket) One(db ledger.ReadOnlyKVStore, key []byte, dst Model) error {
	raw, err := db.Get(b.DBKey(key))
	if err != nil {
		return errors.Wrap(err, "cannot load")
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s %x", b.name, key)
	}
	if err := dst.Unmarshal(raw); err != nil {
		return errors.Wrapf(err, "cannot unmarshal %s", b.name)
	}
	return nil
}

// Get loads a fresh model, returning nil when the key is missing.
func (b Bucket) Get(db ledger.ReadOnlyKVStore, key []byte) (Model, error) {
	m := b.newModel()
	switch err := b.One(db, key, m); {
	case err == nil:
		return m, nil
	case errors.ErrNotFound.Is(err):
		return nil, nil
	default:
		return nil, err
	}
}

// Has returns true if an entry is stored under key.
func (b Bucket) Has(db ledger.ReadOnlyKVStore, key []byte) (bool, error) {
	return db.Has(b.DBKey(key))
}

// Put validates and stores the model under key.
func (b Bucket) Put(db ledger.KVStore, key []byte, m Model) error {
	if err := m.Validate(); err != nil {
		return errors.Wrapf(err, "invalid %s", b.name)
	}
	raw, err := m.Marshal()
	if err != nil {
		return errors.Wrapf(err, "cannot marshal %s", b.name)
	}
	return db.Set(b.DBKey(key), raw)
}

// Delete removes the entry stored under key. Missing entries are ignored.
func (b Bucket) Delete(db ledger.KVStore, key []byte) error {
	return db.Delete(b.DBKey(key))
}
