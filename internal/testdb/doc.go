// Package testdb provides utilities for tests that need a real PostgreSQL
// database.
//
// Tests obtain a connection with GetTestDBWithT, which skips the test when
// no database URL is configured, and run their work inside WithTx so every
// change is rolled back when the test finishes:
//
//	func TestSomething(t *testing.T) {
//	    db := testdb.GetTestDBWithT(t)
//
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        taskStore := postgres.NewPostgresTaskStore(tx, nil)
//	        // ...
//	    })
//	}
//
// The database URL is read from DATABASE_URL, falling back to
// TASK_API_TEST_DB_URL.
package testdb
