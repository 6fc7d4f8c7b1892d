/*
Package actors makes writing Tapis actor functions in Go easier.

The auth subpackage provides a convenient abstraction for talking to a
Tapis science gateway. See the documentation of the auth package for details
on how to authenticate with a gateway, either with credentials or with the
access token that the platform injects into a running actor.
The pipeline subpackage implements a low-level API for chaining the actor
handlers together in-process when you need to exercise the whole pipeline
without deploying it.

The root actors package provides the execution Context that every actor
starts from and the three handlers that make up the file-to-job-to-chat
pipeline: an Ingestor that imports a remote file into a storage system and
messages the next actor, a Submitter that turns that message into an HPC
batch job, and a Notifier that posts job status to a chat webhook.

All three handlers are easy to use. They only have one method, Handle(),
that processes a single message synchronously (it will only return after
the outbound platform calls are complete). The pipeline Runner also exposes
a Status struct that can be used during a local run to query the progress
of the run.
*/
package actors
