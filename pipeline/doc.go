/*
Package pipeline implements a low-level pipelined API for local actor runs.

In production the three actors of the pipeline run as independent
executions on the platform, which delivers messages between them. This
package chains the same handlers together in-process so that the whole
pipeline can be exercised against a mock gateway (or a real one) without
deploying anything.

Most of the functions defined in this package are stages that communicate
with channels of type actors.Message. Pass channels of Messages to each
stage, and use the return value of one stage as input to the next. The
Runner type assembles the standard three-handler chain for you.

The API expects an errors channel to be passed to most stages that will
allow it to report nonfatal errors. It is generally sufficient to create
a single errors channel and pass it to all stages. Ensure that you drain
the errors channel though, or your pipeline will block on the first error
that it encounters.
*/
package pipeline
