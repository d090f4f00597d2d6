// Package service contains the application use cases for exercise
// sessions. It coordinates the domain model, the scoring engine and the
// session store, applies transactional boundaries and translates store
// errors into service-level errors for the API layer.
//
// Services receive their dependencies through constructors and depend on
// repository interfaces, never on a concrete database implementation.
package service
