package mysql

// SchemaSQL creates the recorder tables. Applied by EnsureSchema; kept as
// plain DDL so the integration tests can bootstrap an empty database.
var SchemaSQL = []string{
	`CREATE TABLE IF NOT EXISTS flight_searches (
  id              CHAR(36)    NOT NULL,
  conversation_id VARCHAR(64) NOT NULL DEFAULT '',
  user_id         VARCHAR(64) NOT NULL DEFAULT '',
  ticket_type     VARCHAR(32) NOT NULL DEFAULT 'round_trip',
  origin          CHAR(3)     NOT NULL,
  destination     CHAR(3)     NOT NULL,
  depart_date     DATE        NOT NULL,
  return_date     DATE        NOT NULL,
  query           JSON        NOT NULL,
  offers          JSON        NOT NULL,
  created_at      TIMESTAMP   NOT NULL DEFAULT CURRENT_TIMESTAMP,
  PRIMARY KEY (id),
  KEY idx_searches_route (origin, destination, created_at)
)`,
	`CREATE TABLE IF NOT EXISTS search_messages (
  id              CHAR(36)     NOT NULL,
  search_id       CHAR(36)     NOT NULL,
  conversation_id VARCHAR(64)  NOT NULL DEFAULT '',
  user_id         VARCHAR(64)  NOT NULL DEFAULT '',
  source          VARCHAR(32)  NOT NULL DEFAULT '',
  ` + "`text`" + `          MEDIUMTEXT   NOT NULL,
  created_at      TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP,
  PRIMARY KEY (id),
  KEY idx_messages_search (search_id, created_at)
)`,
	`CREATE TABLE IF NOT EXISTS search_failures (
  search_id  CHAR(36)     NOT NULL,
  code       VARCHAR(32)  NOT NULL,
  detail     TEXT         NOT NULL,
  seen_at    TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP,
  PRIMARY KEY (search_id, code)
)`,
}

const insertFlightDataSQL = `
INSERT INTO flight_searches
  (id, conversation_id, user_id, ticket_type, origin, destination, depart_date, return_date, query, offers)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  query      = VALUES(query),
  offers     = VALUES(offers)
`

const insertMessageSQL = "INSERT INTO search_messages\n" +
	"  (id, search_id, conversation_id, user_id, source, `text`)\n" +
	"VALUES (?, ?, ?, ?, ?, ?)"

const insertFailureSQL = `
INSERT INTO search_failures (search_id, code, detail)
VALUES (?, ?, ?)
ON DUPLICATE KEY UPDATE seen_at = CURRENT_TIMESTAMP, detail = VALUES(detail)
`
