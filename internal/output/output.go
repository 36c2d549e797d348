// Package output writes result records to files, object storage or Kafka.
package output

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"reflect"
	"sort"
	"sync"
	"time"

	"github.com/siddharthshetty008/restoAnalyze/internal/cloudwriter"
	"github.com/siddharthshetty008/restoAnalyze/internal/logging"
	"github.com/siddharthshetty008/restoAnalyze/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"
)

type OutputDestination interface {
	WriteMessage(topic string, msg []byte) error
	Close() error
}

// New picks a destination from config: Kafka when enabled, a file sink when
// an output path is set, the console otherwise.
func New(ctx context.Context, config *models.Config, logger logrus.FieldLogger) (OutputDestination, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	if config.KafkaEnabled {
		return NewKafkaOutput(config, logger)
	}
	if config.OutputPath == "" {
		return NewConsoleOutput(os.Stdout), nil
	}
	switch config.OutputFormat {
	case "parquet":
		return NewParquetOutput(ctx, config, logger)
	case "json":
		return NewJSONOutput(config.OutputPath, config.OutputFolder), nil
	case "csv":
		return NewCSVOutput(config.OutputPath, config.OutputFolder), nil
	}
	return nil, fmt.Errorf("unsupported output format: %s", config.OutputFormat)
}

// partition decodes msg and returns it with its year=/month=/day= path.
func partition(msg []byte) (map[string]interface{}, string, error) {
	var event map[string]interface{}
	if err := json.Unmarshal(msg, &event); err != nil {
		return nil, "", err
	}
	timestamp, ok := event["timestamp"].(float64)
	if !ok {
		return nil, "", fmt.Errorf("invalid timestamp")
	}
	year, month, day := time.Unix(int64(timestamp), 0).UTC().Date()
	return event, fmt.Sprintf("year=%d/month=%02d/day=%02d", year, month, day), nil
}

type ConsoleOutput struct {
	mu sync.Mutex
	w  io.Writer
}

func NewConsoleOutput(w io.Writer) *ConsoleOutput {
	return &ConsoleOutput{w: w}
}

func (c *ConsoleOutput) WriteMessage(topic string, msg []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := fmt.Fprintf(c.w, "[%s] %s\n", topic, msg); err != nil {
		return fmt.Errorf("failed to write to console: %w", err)
	}
	return nil
}

func (c *ConsoleOutput) Close() error { return nil }

type JSONOutput struct {
	mu       sync.Mutex
	basePath string
	folder   string
	files    map[string]*os.File
}

func NewJSONOutput(basePath, folder string) *JSONOutput {
	return &JSONOutput{
		basePath: basePath,
		folder:   folder,
		files:    make(map[string]*os.File),
	}
}

func (j *JSONOutput) WriteMessage(topic string, msg []byte) error {
	event, partitionPath, err := partition(msg)
	if err != nil {
		return err
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	fileKey := topic + "/" + partitionPath
	file, ok := j.files[fileKey]
	if !ok {
		fullPath := filepath.Join(j.basePath, j.folder, topic, filepath.FromSlash(partitionPath))
		if err := os.MkdirAll(fullPath, os.ModePerm); err != nil {
			return err
		}
		file, err = os.Create(filepath.Join(fullPath, "data.json"))
		if err != nil {
			return err
		}
		j.files[fileKey] = file
	}

	jsonData, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if _, err := file.Write(append(jsonData, '\n')); err != nil {
		return err
	}
	return nil
}

func (j *JSONOutput) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	var lastErr error
	for key, file := range j.files {
		if err := file.Close(); err != nil {
			lastErr = err
		}
		delete(j.files, key)
	}
	return lastErr
}

type csvFile struct {
	file    *os.File
	writer  *csv.Writer
	headers []string
}

type CSVOutput struct {
	mu       sync.Mutex
	basePath string
	folder   string
	files    map[string]*csvFile
}

func NewCSVOutput(basePath, folder string) *CSVOutput {
	return &CSVOutput{
		basePath: basePath,
		folder:   folder,
		files:    make(map[string]*csvFile),
	}
}

func (c *CSVOutput) WriteMessage(topic string, msg []byte) error {
	event, partitionPath, err := partition(msg)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	fileKey := topic + "/" + partitionPath
	f, ok := c.files[fileKey]
	if !ok {
		fullPath := filepath.Join(c.basePath, c.folder, topic, filepath.FromSlash(partitionPath))
		if err := os.MkdirAll(fullPath, os.ModePerm); err != nil {
			return err
		}
		file, err := os.Create(filepath.Join(fullPath, "data.csv"))
		if err != nil {
			return err
		}
		f = &csvFile{file: file, writer: csv.NewWriter(file), headers: headers(event)}
		c.files[fileKey] = f
		// new file: header row first
		if err := f.writer.Write(f.headers); err != nil {
			return err
		}
	}

	row := make([]string, len(f.headers))
	for i, header := range f.headers {
		if value, ok := event[header]; ok && value != nil {
			row[i] = formatValue(value)
		}
	}
	if err := f.writer.Write(row); err != nil {
		return err
	}
	f.writer.Flush()
	return f.writer.Error()
}

func formatValue(v interface{}) string {
	if f, ok := v.(float64); ok && f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%v", v)
}

func headers(event map[string]interface{}) []string {
	keys := make([]string, 0, len(event))
	for key := range event {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (c *CSVOutput) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	var lastErr error
	for key, f := range c.files {
		f.writer.Flush()
		if err := f.writer.Error(); err != nil {
			lastErr = err
		}
		if err := f.file.Close(); err != nil {
			lastErr = err
		}
		delete(c.files, key)
	}
	return lastErr
}

// CloudParquetFile adapts a CloudWriter to the write-only subset of
// source.ParquetFile the parquet writer uses.
type CloudParquetFile struct {
	cloudWriter cloudwriter.CloudWriter
	offset      int64
}

func NewCloudParquetFile(cloudWriter cloudwriter.CloudWriter) *CloudParquetFile {
	return &CloudParquetFile{cloudWriter: cloudWriter}
}

func (c *CloudParquetFile) Open(name string) (source.ParquetFile, error)   { return c, nil }
func (c *CloudParquetFile) Create(name string) (source.ParquetFile, error) { return c, nil }

func (c *CloudParquetFile) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		c.offset = offset
	case io.SeekCurrent:
		c.offset += offset
	case io.SeekEnd:
		return 0, fmt.Errorf("seek from end not supported for cloud storage")
	}
	return c.offset, nil
}

func (c *CloudParquetFile) Read(p []byte) (int, error) {
	return 0, fmt.Errorf("read not supported for cloud storage")
}

func (c *CloudParquetFile) Write(p []byte) (int, error) {
	n, err := c.cloudWriter.Write(p)
	c.offset += int64(n)
	return n, err
}

func (c *CloudParquetFile) Close() error {
	return c.cloudWriter.Close()
}

type parquetFile struct {
	mu     sync.Mutex
	writer *writer.ParquetWriter
	file   source.ParquetFile
}

type ParquetOutput struct {
	mu                 sync.Mutex
	basePath           string
	folder             string
	files              map[string]*parquetFile
	cloudWriterFactory cloudwriter.CloudWriterFactory
	cloudBucketName    string
	logger             logrus.FieldLogger
}

func NewParquetOutput(ctx context.Context, config *models.Config, logger logrus.FieldLogger) (*ParquetOutput, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	p := &ParquetOutput{
		basePath: config.OutputPath,
		folder:   config.OutputFolder,
		files:    make(map[string]*parquetFile),
		logger:   logger,
	}

	if config.OutputDestination != "" && config.OutputDestination != "local" {
		switch config.CloudStorage.Provider {
		case "s3":
			factory, err := cloudwriter.NewS3WriterFactory(ctx, config.CloudStorage.Region, config.OutputPath)
			if err != nil {
				return nil, fmt.Errorf("failed to create cloud writer factory: %w", err)
			}
			p.cloudWriterFactory = factory
			p.cloudBucketName = config.CloudStorage.BucketName
		default:
			return nil, fmt.Errorf("unsupported cloud storage provider: %s", config.CloudStorage.Provider)
		}
		return p, nil
	}

	// clean up existing .parquet files
	p.cleanup()
	return p, nil
}

// NewParquetOutputWithFactory writes every file through factory.
func NewParquetOutputWithFactory(folder, bucket string, factory cloudwriter.CloudWriterFactory, logger logrus.FieldLogger) *ParquetOutput {
	if logger == nil {
		logger = logging.Discard()
	}
	return &ParquetOutput{
		folder:             folder,
		files:              make(map[string]*parquetFile),
		cloudWriterFactory: factory,
		cloudBucketName:    bucket,
		logger:             logger,
	}
}

func (p *ParquetOutput) WriteMessage(topic string, msg []byte) error {
	record, err := newEvent(topic)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(msg, record); err != nil {
		return fmt.Errorf("decoding %s record: %w", topic, err)
	}
	_, partitionPath, err := partition(msg)
	if err != nil {
		return err
	}

	key := topic + "/" + partitionPath
	p.mu.Lock()
	pf, ok := p.files[key]
	if !ok {
		pf, err = p.createNewWriter(topic, partitionPath, record)
		if err != nil {
			p.mu.Unlock()
			return fmt.Errorf("failed to create new writer: %w", err)
		}
		p.files[key] = pf
	}
	p.mu.Unlock()

	pf.mu.Lock()
	defer pf.mu.Unlock()
	if err := pf.writer.Write(reflect.ValueOf(record).Elem().Interface()); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	return nil
}

func (p *ParquetOutput) createNewWriter(topic, partitionPath string, record any) (*parquetFile, error) {
	var fw source.ParquetFile
	if p.cloudWriterFactory != nil {
		objectPath := path.Join(p.folder, topic, partitionPath, "data.parquet")
		cloudWriter, err := p.cloudWriterFactory.NewWriter(p.cloudBucketName, objectPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create cloud file writer: %w", err)
		}
		fw = NewCloudParquetFile(cloudWriter)
	} else {
		fullPath := filepath.Join(p.basePath, p.folder, topic, filepath.FromSlash(partitionPath))
		if err := os.MkdirAll(fullPath, os.ModePerm); err != nil {
			return nil, err
		}
		var err error
		fw, err = local.NewLocalFileWriter(filepath.Join(fullPath, "data.parquet"))
		if err != nil {
			return nil, fmt.Errorf("failed to create local file writer: %w", err)
		}
	}

	pw, err := writer.NewParquetWriter(fw, record, 4)
	if err != nil {
		return nil, fmt.Errorf("failed to create ParquetWriter: %w", err)
	}
	return &parquetFile{writer: pw, file: fw}, nil
}

func (p *ParquetOutput) cleanup() {
	fullPath := filepath.Join(p.basePath, p.folder)
	err := filepath.Walk(fullPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".parquet" {
			return os.Remove(path)
		}
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		p.logger.WithError(err).Warn("error cleaning up parquet files")
	}
}

func (p *ParquetOutput) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var lastErr error
	for key, pf := range p.files {
		pf.mu.Lock()
		if err := pf.writer.WriteStop(); err != nil {
			lastErr = err
			p.logger.WithError(err).WithField("key", key).Error("error closing parquet writer")
		}
		if err := pf.file.Close(); err != nil {
			lastErr = err
			p.logger.WithError(err).WithField("key", key).Error("error closing parquet file")
		}
		pf.mu.Unlock()
		delete(p.files, key)
	}
	return lastErr
}
