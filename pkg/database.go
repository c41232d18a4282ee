package huffman

import (
	"database/sql"
	"errors"
	"fmt"
	"net"

	"github.com/go-sql-driver/mysql"
	sqlx "github.com/jmoiron/sqlx" //make alias name the package to sqlx
)

const dbPort = "3306"

var schema = []string{
	`CREATE TABLE IF NOT EXISTS SymbolModels (
  Model VARCHAR(255) NOT NULL PRIMARY KEY,
  Padding TINYINT NOT NULL,
  Packed LONGBLOB NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS SymbolCodes (
  Model VARCHAR(255) NOT NULL,
  Symbol VARBINARY(1024) NOT NULL,
  Code TEXT NOT NULL,
  PRIMARY KEY (Model, Symbol)
)`,
}

type SymbolModelEntry struct {
	Model   string `db:"Model"`
	Padding int    `db:"Padding"`
	Packed  []byte `db:"Packed"`
}

type SymbolCodeEntry struct {
	Model  string `db:"Model"`
	Symbol string `db:"Symbol"`
	Code   string `db:"Code"`
}

// DatabaseDSN builds the MySQL connection string.
func DatabaseDSN(user string, pass string, host string, dbname string) string {
	cfg := mysql.NewConfig()
	cfg.User = user
	cfg.Passwd = pass
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(host, dbPort)
	cfg.DBName = dbname
	cfg.ParseTime = true
	return cfg.FormatDSN()
}

func ConnectToDatabase(user string, pass string, host string, dbname string) (*sqlx.DB, error) {
	return sqlx.Connect("mysql", DatabaseDSN(user, pass, host, dbname))
}

// DBStore keeps artifact pairs in MySQL, one SymbolModels row with the
// padding and packed bytes plus one SymbolCodes row per symbol. The base
// reference is the model name.
type DBStore struct {
	DB *sqlx.DB
}

func NewDBStore(db *sqlx.DB) (*DBStore, error) {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return nil, fmt.Errorf("error creating schema: %w", err)
		}
	}
	return &DBStore{DB: db}, nil
}

func (s *DBStore) Save(model string, artifacts Artifacts) (err error) {
	if err := artifacts.Table.Validate(); err != nil {
		return err
	}
	modelRow, codeRows := artifactsToRows(model, artifacts)

	tx, err := s.DB.Beginx()
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.Exec("DELETE FROM SymbolCodes WHERE Model = ?", model); err != nil {
		return fmt.Errorf("error deleting codes of %q: %w", model, err)
	}
	if _, err = tx.Exec("DELETE FROM SymbolModels WHERE Model = ?", model); err != nil {
		return fmt.Errorf("error deleting model %q: %w", model, err)
	}
	_, err = tx.NamedExec("INSERT INTO SymbolModels (Model, Padding, Packed) VALUES (:Model, :Padding, :Packed)", modelRow)
	if err != nil {
		return fmt.Errorf("error inserting model %q: %w", model, err)
	}
	if len(codeRows) > 0 {
		_, err = tx.NamedExec("INSERT INTO SymbolCodes (Model, Symbol, Code) VALUES (:Model, :Symbol, :Code)", codeRows)
		if err != nil {
			return fmt.Errorf("error inserting codes of %q: %w", model, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("error committing model %q: %w", model, err)
	}

	if configuration.Verbosity > 1 {
		logger.Info(fmt.Sprintf("Model %s stored with %d codes", model, len(codeRows)), "database")
	}
	return nil
}

func (s *DBStore) Load(model string) (Artifacts, error) {
	query := "SELECT Model, Padding, Packed FROM SymbolModels WHERE Model = ?"
	if configuration.Verbosity > 2 {
		logger.Info(fmt.Sprintf("Query: %s [%s]", query, model), "database")
	}
	var modelRow SymbolModelEntry
	if err := s.DB.Get(&modelRow, query, model); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Artifacts{}, fmt.Errorf("model %q not found: %w", model, err)
		}
		return Artifacts{}, fmt.Errorf("error querying database: %w", err)
	}

	query = "SELECT Model, Symbol, Code FROM SymbolCodes WHERE Model = ?"
	if configuration.Verbosity > 2 {
		logger.Info(fmt.Sprintf("Query: %s [%s]", query, model), "database")
	}
	var codeRows []SymbolCodeEntry
	if err := s.DB.Select(&codeRows, query, model); err != nil {
		return Artifacts{}, fmt.Errorf("error querying database: %w", err)
	}

	return rowsToArtifacts(modelRow, codeRows)
}

func artifactsToRows(model string, artifacts Artifacts) (SymbolModelEntry, []SymbolCodeEntry) {
	packed := artifacts.Packed
	if packed == nil {
		packed = []byte{}
	}
	modelRow := SymbolModelEntry{Model: model, Padding: artifacts.Table.Padding, Packed: packed}
	codeRows := make([]SymbolCodeEntry, 0, len(artifacts.Table.Codes))
	for _, symbol := range artifacts.Table.Codes.SortedSymbols() {
		codeRows = append(codeRows, SymbolCodeEntry{
			Model:  model,
			Symbol: symbol,
			Code:   artifacts.Table.Codes[symbol],
		})
	}
	return modelRow, codeRows
}

func rowsToArtifacts(modelRow SymbolModelEntry, codeRows []SymbolCodeEntry) (Artifacts, error) {
	codes := make(CodeTable, len(codeRows))
	for _, row := range codeRows {
		if row.Model != modelRow.Model {
			return Artifacts{}, fmt.Errorf("%w: code row of model %q mixed into %q", ErrMalformedSymbolTable, row.Model, modelRow.Model)
		}
		if _, dup := codes[row.Symbol]; dup {
			return Artifacts{}, fmt.Errorf("%w: duplicated symbol %q", ErrMalformedSymbolTable, row.Symbol)
		}
		codes[row.Symbol] = row.Code
	}
	table := SymbolTable{Codes: codes, Padding: modelRow.Padding}
	if err := table.Validate(); err != nil {
		return Artifacts{}, err
	}
	packed := modelRow.Packed
	if packed == nil {
		packed = []byte{}
	}
	return Artifacts{Table: table, Packed: packed}, nil
}
