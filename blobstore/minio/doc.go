// Package minio provides a BlobStore implementation using the MinIO client,
// so partition sets can live in MinIO or any other S3-compatible server
// (Ceph, Garage, SeaweedFS).
//
// # Basic Usage
//
//	client, err := minio.New("localhost:9000", &minio.Options{
//	    Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
//	    Secure: false,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	store := minioblob.NewStore(client, "my-bucket", "partitions/")
//	rw := filepartition.NewBlobReaderWriter[Row](store, format.CSV[Row]{})
//
// Partition paths are mapped to object keys below the root prefix; the
// directory part of a layout becomes a key prefix.
package minio
