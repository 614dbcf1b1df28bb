// Package component provides stateful UI building blocks with an explicit
// mount/update/unmount lifecycle.
//
// A Component owns two key/value stores: props (external configuration) and
// state (internal data). Every mutation goes through SetProp or SetState,
// which skip writes of an unchanged value, fire the update hooks and notify
// the invalidation callback. Lifecycle transitions are monotonic: a
// component mounts at most once, unmounts at most once, and every redundant
// call is a silent no-op.
//
// Hook panics are contained at the component boundary: a panicking listener
// is recovered, converted to a coded error and routed to the component's
// error hooks (or its logger), and the remaining listeners still fire.
package component
