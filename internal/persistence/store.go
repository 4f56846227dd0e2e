package persistence

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"
	_ "github.com/lib/pq"
	"github.com/spf13/viper"

	"github.com/greenm01/ec4x/internal/ec4xerr"
	"github.com/greenm01/ec4x/internal/logger"
	"github.com/greenm01/ec4x/internal/state"
	"github.com/greenm01/ec4x/internal/wireproto"
)

// configuration mirrors the connection parameters a running host needs
// to reach its keyed game store (spec.md §6 persisted state layout).
//
// The `host` and `port` locate the Postgres instance. `name` and
// `user` are mandatory — NewStore refuses to build a Store without
// them; `password` is optional and passed to the driver as given
// (possibly empty). `timeout` paces the
// reconnect-healthcheck loop, in seconds. `connectionsPool` bounds how
// many concurrent connections this process opens.
type configuration struct {
	host            string
	port            int
	name            string
	user            string
	password        string
	timeout         int
	connectionsPool int
}

func parseConfiguration() configuration {
	cfg := configuration{
		host:            "localhost",
		port:            5432,
		timeout:         5,
		connectionsPool: 5,
	}

	if viper.IsSet("Database.Host") {
		cfg.host = viper.GetString("Database.Host")
	}
	if viper.IsSet("Database.Port") {
		cfg.port = viper.GetInt("Database.Port")
	}
	if viper.IsSet("Database.Name") {
		cfg.name = viper.GetString("Database.Name")
	}
	if viper.IsSet("Database.User") {
		cfg.user = viper.GetString("Database.User")
	}
	if viper.IsSet("Database.Password") {
		cfg.password = viper.GetString("Database.Password")
	}
	if viper.IsSet("Database.Timeout") {
		cfg.timeout = viper.GetInt("Database.Timeout")
	}
	if viper.IsSet("Database.ConnectionsPool") {
		cfg.connectionsPool = viper.GetInt("Database.ConnectionsPool")
	}

	if cfg.name == "" {
		return configuration{}
	}
	return cfg
}

// Store is the keyed, authenticated, compressed persistence layer for
// snapshots and per-house deltas (spec.md C11, §4.10). It wraps
// database/sql over lib/pq rather than the teacher's native pgx pool,
// since lib/pq is the driver the retrieval pack's non-sogserver repos
// reach for through database/sql — but keeps the teacher's
// connect-with-retry-and-healthcheck shape.
type Store struct {
	db     *sql.DB
	lock   sync.Mutex
	log    logger.Logger
	cfg    configuration
	ident  *wireproto.Identity
	coder  *zstd.Encoder
	reader *zstd.Decoder
}

// NewStore connects to the Postgres instance described by viper's
// Database.* keys, authenticates every payload it writes with ident,
// and starts a background healthcheck matching the teacher's pattern in
// pkg/db/db.go. Schema creation is left to migrations outside this
// package; NewStore only opens the pool.
func NewStore(log logger.Logger, ident *wireproto.Identity) (*Store, error) {
	cfg := parseConfiguration()
	if cfg.name == "" || cfg.user == "" {
		return nil, ec4xerr.Config("persistence.NewStore", "Database.Name and Database.User must be set")
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, ec4xerr.Config("persistence.NewStore", "building zstd encoder: %v", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, ec4xerr.Config("persistence.NewStore", "building zstd decoder: %v", err)
	}

	s := &Store{log: log, cfg: cfg, ident: ident, coder: enc, reader: dec}
	s.connect()

	ticker := time.NewTicker(time.Duration(cfg.timeout) * time.Second)
	go func() {
		for range ticker.C {
			s.healthcheck()
		}
	}()

	return s, nil
}

func (s *Store) dsn() string {
	return fmt.Sprintf("host=%s port=%d dbname=%s user=%s password=%s sslmode=disable",
		s.cfg.host, s.cfg.port, s.cfg.name, s.cfg.user, s.cfg.password)
}

func (s *Store) connect() {
	s.log.Trace(logger.Info, "persistence", fmt.Sprintf("connecting to database %q as %q", s.cfg.name, s.cfg.user))

	db, err := sql.Open("postgres", s.dsn())
	if err != nil {
		s.log.Trace(logger.Warning, "persistence", fmt.Sprintf("failed to open database %q: %v", s.cfg.name, err))
		return
	}
	db.SetMaxOpenConns(s.cfg.connectionsPool)
	if err := db.Ping(); err != nil {
		s.log.Trace(logger.Warning, "persistence", fmt.Sprintf("database %q unreachable: %v", s.cfg.name, err))
		_ = db.Close()
		return
	}

	s.lock.Lock()
	defer s.lock.Unlock()
	s.db = db
}

func (s *Store) healthcheck() {
	s.lock.Lock()
	db := s.db
	s.lock.Unlock()

	if db == nil || db.Ping() != nil {
		s.connect()
	}
}

// seal compresses then signs a blob, ready to travel to the wire or
// land in a database column (spec.md §4.10 "payloads must be
// authenticated... and may be encrypted per-recipient").
func (s *Store) seal(raw []byte) []byte {
	compressed := s.coder.EncodeAll(raw, nil)
	return s.ident.Sign(compressed)
}

func (s *Store) unseal(signed []byte) ([]byte, error) {
	compressed, err := wireproto.Verify(s.ident.Public, signed)
	if err != nil {
		return nil, err
	}
	raw, err := s.reader.DecodeAll(compressed, nil)
	if err != nil {
		return nil, ec4xerr.Crypto("persistence.unseal", err, "decompressing stored payload")
	}
	return raw, nil
}

// SaveSnapshot persists the authoritative snapshot for one game at the
// given turn, replacing any snapshot already stored at that turn.
func (s *Store) SaveSnapshot(gameID string, turn int, c *state.Container) error {
	return s.withDB(func(db *sql.DB) error {
		sealed := s.seal(EncodeSnapshot(c))
		_, err := db.Exec(
			`insert into snapshots (game_id, turn, sealed_data) values ($1, $2, $3)
			 on conflict (game_id, turn) do update set sealed_data = excluded.sealed_data`,
			gameID, turn, sealed,
		)
		if err != nil {
			return ec4xerr.Transport("persistence.SaveSnapshot", err, "writing snapshot for game %s turn %d", gameID, turn)
		}
		return nil
	})
}

// LoadLatestSnapshot returns the highest-turn snapshot stored for a
// game, already unsealed and decompressed.
func (s *Store) LoadLatestSnapshot(gameID string) ([]byte, int, error) {
	var sealed []byte
	var turn int
	err := s.withDB(func(db *sql.DB) error {
		row := db.QueryRow(
			`select turn, sealed_data from snapshots where game_id = $1 order by turn desc limit 1`,
			gameID,
		)
		return row.Scan(&turn, &sealed)
	})
	if err != nil {
		return nil, 0, ec4xerr.Transport("persistence.LoadLatestSnapshot", err, "loading snapshot for game %s", gameID)
	}
	raw, err := s.unseal(sealed)
	if err != nil {
		return nil, 0, err
	}
	return raw, turn, nil
}

// SavePlayerDelta persists one house's per-turn delta (spec.md §4.10
// "player delta").
func (s *Store) SavePlayerDelta(gameID, houseID string, turn int, data []byte) error {
	return s.withDB(func(db *sql.DB) error {
		sealed := s.seal(data)
		_, err := db.Exec(
			`insert into player_deltas (game_id, house_id, turn, sealed_data) values ($1, $2, $3, $4)
			 on conflict (game_id, house_id, turn) do update set sealed_data = excluded.sealed_data`,
			gameID, houseID, turn, sealed,
		)
		if err != nil {
			return ec4xerr.Transport("persistence.SavePlayerDelta", err, "writing delta for game %s house %s turn %d", gameID, houseID, turn)
		}
		return nil
	})
}

// LoadPlayerDelta returns one house's unsealed delta for a turn.
func (s *Store) LoadPlayerDelta(gameID, houseID string, turn int) ([]byte, error) {
	var sealed []byte
	err := s.withDB(func(db *sql.DB) error {
		row := db.QueryRow(
			`select sealed_data from player_deltas where game_id = $1 and house_id = $2 and turn = $3`,
			gameID, houseID, turn,
		)
		return row.Scan(&sealed)
	})
	if err != nil {
		return nil, ec4xerr.Transport("persistence.LoadPlayerDelta", err, "loading delta for game %s house %s turn %d", gameID, houseID, turn)
	}
	return s.unseal(sealed)
}

func (s *Store) withDB(op func(db *sql.DB) error) error {
	s.lock.Lock()
	db := s.db
	s.lock.Unlock()
	if db == nil {
		return ec4xerr.Transport("persistence.Store", nil, "database connection is not established")
	}
	return op(db)
}

// LoadLatestSnapshotState loads and decodes the latest snapshot for a
// game directly into a ready-to-use Container.
func (s *Store) LoadLatestSnapshotState(gameID string) (*state.Container, int, error) {
	raw, turn, err := s.LoadLatestSnapshot(gameID)
	if err != nil {
		return nil, 0, err
	}
	c, err := DecodeSnapshot(raw)
	if err != nil {
		return nil, 0, ec4xerr.Integrity("persistence.LoadLatestSnapshotState", "decoding stored snapshot for game %s: %v", gameID, err)
	}
	return c, turn, nil
}
