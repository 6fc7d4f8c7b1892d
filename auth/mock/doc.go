/*
Package mock provides fake gateway endpoints for testing

The structs defined here all implement the
github.com/TACC/taccster-2021-tapis-actors/auth.Gateway interface and are
therefore useful for testing any code that talks to the platform via a
gateway. It includes an endpoint that does nothing, an endpoint that
records imports, submissions, and messages in memory, and an endpoint
that always generates errors.
*/
package mock
