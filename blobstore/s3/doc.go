// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("partitions/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
//	p, err := filepartition.New[Row](layout, filepartition.NewBlobReaderWriter[Row](store, format.CSV[Row]{}))
//
// # Features
//
//   - Range reads for partial fetches
//   - Multipart uploads for large partitions
//   - Automatic pagination for listing, which is how partition sets are discovered
//   - Configurable prefix for multi-tenant isolation
package s3
