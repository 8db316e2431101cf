/*
Package streaming relays bytes from a producer (a remote HTTP body or a
child process stdout pipe) to an HTTP client in fixed-size chunks.

Chunks are flushed as they arrive so playback can start before the source
is exhausted, and nothing beyond a single chunk is ever buffered. The relay
watches the request context between chunks, so a disconnected client stops
the copy promptly and the caller can tear down the producer.

Errors fall into two kinds: ErrClientGone (the consumer stopped reading,
not a server problem) and ErrSourceFailed (the producer broke mid-stream).
Once a relay has begun, neither can be reported to the client; callers log
them and close the connection.
*/
package streaming
