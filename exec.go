package logoemoji

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/logoemoji/logoemoji/utils"
	"golang.org/x/term"
)

// maxWorkers sets the maximum number of concurrently running workers.
const maxWorkers = 20

// SourceExtensions lists the file extensions picked up in directory mode.
var SourceExtensions = []string{".jpg", ".jpeg", ".png"}

// Ops describes a batch run: where the logos come from and where the
// emojis go. Src may be a file, a directory, an URL or PipeName.
type Ops struct {
	Src, Dst, PipeName string
	Workers            int
	Quiet              bool
	Stderr             io.Writer
}

// result holds the relevant information about the processed image.
type result struct {
	path string
	dst  string
	err  error
}

// Execute renders the emoji of every logo designated by op.
// Directories are processed concurrently, each worker rendering its own files.
// It returns the first error met.
func (p *Processor) Execute(ctx context.Context, op *Ops) error {
	if op.Stderr == nil {
		op.Stderr = os.Stderr
	}

	var (
		fs      os.FileInfo
		imgFile *os.File
		err     error
	)
	// Check if source path is a local image or URL.
	if utils.IsValidUrl(op.Src) {
		src, err := utils.DownloadImage(ctx, op.Src, MaxFileSize)
		if err != nil {
			return fmt.Errorf("failed to load the source image: %w", err)
		}
		defer func() {
			src.Close()
			os.Remove(src.Name())
		}()

		if fs, err = src.Stat(); err != nil {
			return fmt.Errorf("failed to load the source image: %w", err)
		}
		imgFile = src
	} else {
		// Check if the source is a pipe name or a regular file.
		if op.Src == op.PipeName {
			fs, err = os.Stdin.Stat()
		} else {
			fs, err = os.Stat(op.Src)
		}
		if err != nil {
			return fmt.Errorf("failed to load the source image: %w", err)
		}
	}

	now := time.Now()

	switch mode := fs.Mode(); {
	case mode.IsDir():
		if err := os.MkdirAll(op.Dst, 0755); err != nil {
			return fmt.Errorf("unable to create the destination directory: %w", err)
		}

		// Limit the concurrently running workers to maxWorkers.
		if op.Workers <= 0 || op.Workers > maxWorkers {
			op.Workers = runtime.NumCPU()
		}

		ch := make(chan result)
		done := make(chan struct{})
		defer close(done)

		paths, errc := walkDir(done, op.Src, op.Dst, SourceExtensions)

		var wg sync.WaitGroup
		wg.Add(op.Workers)
		for i := 0; i < op.Workers; i++ {
			go func() {
				defer wg.Done()
				op.consumer(ctx, p, ch, done, paths)
			}()
		}

		// Close the channel after the values are consumed.
		go func() {
			defer close(ch)
			wg.Wait()
		}()

		var (
			count    int
			firstErr error
		)
		for res := range ch {
			if res.err != nil && firstErr == nil {
				firstErr = fmt.Errorf("%s: %w", res.path, res.err)
			}
			if res.err == nil {
				count++
			}
			op.printOpStatus(res.dst, res.err)
		}
		if err := <-errc; err != nil && firstErr == nil {
			firstErr = err
		}
		if firstErr != nil {
			return firstErr
		}
		op.printf("\n%d emoji(s) generated in %s\n", count,
			utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))

	case mode.IsRegular() || mode&os.ModeNamedPipe != 0: // check for regular files or pipe names
		ext := filepath.Ext(op.Dst)
		if !isValidExtension(strings.ToLower(ext), ExportExtensions) && op.Dst != op.PipeName {
			return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
		}

		var in io.Reader
		if imgFile != nil {
			in = imgFile
		}
		err = op.process(p, in, op.Src, op.Dst)
		op.printOpStatus(op.Dst, err)
		if err != nil {
			return err
		}
		op.printf("\nExecution time: %s\n",
			utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))

	default:
		return fmt.Errorf("unsupported source %q", op.Src)
	}
	return nil
}

// consumer reads the path names from the paths channel and renders the emoji of each of them.
func (op *Ops) consumer(
	ctx context.Context,
	p *Processor,
	res chan<- result,
	done <-chan struct{},
	paths <-chan string,
) {
	for src := range paths {
		dst := filepath.Join(op.Dst, OutputName(src))

		var err error
		if err = ctx.Err(); err == nil {
			err = op.processFile(p, src, dst)
		}

		select {
		case <-done:
			return
		case res <- result{
			path: src,
			dst:  dst,
			err:  err,
		}:
		}
	}
}

// OutputName returns the emoji file name generated for a logo path.
func OutputName(src string) string {
	base := filepath.Base(src)
	return strings.TrimSuffix(base, filepath.Ext(base)) + "-emoji.png"
}

// processFile renders one file of a directory.
func (op *Ops) processFile(p *Processor, in, out string) error {
	src, err := os.Open(in)
	if err != nil {
		return fmt.Errorf("unable to open the source file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("unable to create the destination file: %w", err)
	}
	if err := p.Process(src, dst); err != nil {
		dst.Close()
		os.Remove(out)
		return err
	}
	return dst.Close()
}

// process renders a single logo, showing the progress indicator meanwhile.
// A nil reader means that the source is opened from its path or the pipe.
func (op *Ops) process(p *Processor, r io.Reader, in, out string) error {
	if p.Spinner != nil {
		p.Spinner.StopMsg = ""
		// Start the progress indicator.
		p.Spinner.Start()
	}

	src, dst, err := op.pathToFile(r, in, out)
	if err != nil {
		op.stopSpinner(p, err)
		return err
	}

	defer func() {
		if f, ok := src.(*os.File); ok && f != os.Stdin {
			f.Close()
		}
	}()

	err = p.Process(src, dst)
	if f, ok := dst.(*os.File); ok && f != os.Stdout {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			// remove the generated image file in case of an error
			os.Remove(f.Name())
		}
	}
	op.stopSpinner(p, err)

	return err
}

func (op *Ops) stopSpinner(p *Processor, err error) {
	if p.Spinner == nil {
		return
	}
	if err != nil {
		p.Spinner.StopMsg = fmt.Sprintf("%s %s %s",
			utils.DecorateText("☺ LOGOEMOJI", utils.StatusMessage),
			utils.DecorateText("rendering the emoji failed...", utils.DefaultMessage),
			utils.DecorateText("✘", utils.ErrorMessage),
		)
	} else {
		p.Spinner.StopMsg = fmt.Sprintf("%s %s %s",
			utils.DecorateText("☺ LOGOEMOJI", utils.StatusMessage),
			utils.DecorateText("⇢", utils.DefaultMessage),
			utils.DecorateText("the emoji has been generated successfully ✔", utils.SuccessMessage),
		)
	}
	// Stop the progress indicator.
	p.Spinner.Stop()
}

// pathToFile converts the source and destination paths to readable and writable files.
func (op *Ops) pathToFile(r io.Reader, in, out string) (io.Reader, io.Writer, error) {
	var (
		src io.Reader
		dst io.Writer
		err error
	)
	switch {
	case r != nil:
		src = r
	case in == op.PipeName:
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, nil, errors.New("`-` should be used with a pipe for stdin")
		}
		src = os.Stdin
	default:
		src, err = os.Open(in)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to open the source file: %w", err)
		}
	}

	// Check if the destination is a pipe name or a regular file.
	if out == op.PipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			if f, ok := src.(*os.File); ok && f != os.Stdin && r == nil {
				f.Close()
			}
			return nil, nil, errors.New("`-` should be used with a pipe for stdout")
		}
		dst = os.Stdout
	} else {
		dst, err = os.Create(out)
		if err != nil {
			if f, ok := src.(*os.File); ok && f != os.Stdin && r == nil {
				f.Close()
			}
			return nil, nil, fmt.Errorf("unable to create the destination file: %w", err)
		}
	}
	return src, dst, nil
}

// printOpStatus displays the relevant information about the rendering process.
func (op *Ops) printOpStatus(fname string, err error) {
	if err != nil {
		op.printf("%s%s",
			utils.DecorateText("\nError rendering the emoji: ", utils.ErrorMessage),
			utils.DecorateText(fmt.Sprintf("\n\tReason: %v\n", err.Error()), utils.DefaultMessage),
		)
		return
	}
	if fname != op.PipeName {
		op.printf("\nThe emoji has been saved as: %s %s\n",
			utils.DecorateText(filepath.Base(fname), utils.SuccessMessage),
			utils.DefaultColor,
		)
	}
}

func (op *Ops) printf(format string, args ...any) {
	if op.Quiet || op.Stderr == nil {
		return
	}
	fmt.Fprintf(op.Stderr, format, args...)
}

// walkDir starts a new goroutine to walk the specified directory tree
// in recursive manner and sends the path of each regular file to a new channel.
// It finishes in case the done channel is getting closed.
// The skip directory, when nested in src, is not visited.
func walkDir(
	done <-chan struct{},
	src, skip string,
	srcExts []string,
) (<-chan string, <-chan error) {
	skip = filepath.Clean(skip)

	pathChan := make(chan string)
	errChan := make(chan error, 1)

	go func() {
		// Close the paths channel after Walk returns.
		defer close(pathChan)

		errChan <- filepath.Walk(src, func(path string, f os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if f.IsDir() && path != src && filepath.Clean(path) == skip {
				return filepath.SkipDir
			}
			if !f.Mode().IsRegular() {
				return nil
			}

			if isValidExtension(strings.ToLower(filepath.Ext(f.Name())), srcExts) {
				select {
				case <-done:
					return errors.New("directory walk cancelled")
				case pathChan <- path:
				}
			}
			return nil
		})
	}()
	return pathChan, errChan
}

// isValidExtension checks for the supported extensions.
func isValidExtension(ext string, extensions []string) bool {
	for _, ex := range extensions {
		if ex == ext {
			return true
		}
	}
	return false
}
