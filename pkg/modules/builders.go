package modules

import (
	"fmt"
	"log"
	"math"

	"github.com/image2radiomics/i2r/pkg/pipeline"
)

//nolint:funlen // one registration per module, data not logic
func init() {
	register(checkFolder())
	register(reorganize())
	register(dcm2nii())
	register(spatialResampling())
	register(intensityResampling())
	register(mergeMasks())
	register(maskThresholding())
	register(windowing())
	register(imageHarmonize())
	register(n4BiasFieldCorrection())
	register(radiomics())
	register(segmentation())
	register(featureNormalize())
	register(featureHarmonize())
	register(predict())
	register(deleteFolder())
	register(copyFolder())
}

func checkFolder() Spec {
	return Spec{
		Name:     "CHECK_FOLDER",
		Tool:     "StructFolderCheck.py",
		InputKey: "inputFolder",
		Output:   OutputNone,
		Apply: func(p pipeline.Params) error {
			applyCommon(p)
			p.SetDefault("new_log_file", false)
			p.SetDefault("with-segmentation", true)
			if !p.Has("inputFolder") {
				return errMissing("CHECK_FOLDER", "input folder")
			}
			return nil
		},
		Build: func(p pipeline.Params, _ Context) (*Invocation, error) {
			a := &argList{}
			a.opt("-i", p, "inputFolder").
				opt("--log", p, "log").
				logging(p).
				on("--no-segmentation", !p.Bool("with-segmentation", true))
			return &Invocation{Tool: "StructFolderCheck.py", Args: a.args}, nil
		},
	}
}

func reorganize() Spec {
	return Spec{
		Name:     "REORGANIZE",
		Tool:     "reorganize_multiprocessing.py",
		InputKey: "inputFolder",
		Output:   OutputOptional,
		Apply: func(p pipeline.Params) error {
			applyBatch(p)
			p.SetDefault("with-segmentation", true)
			p.SetDefault("all-data-with-segmentation", true)
			p.SetDefault("inplace", false)
			p.SetDefault("mv", false)
			if !p.Has("inputFolder") {
				return errMissing("REORGANIZE", "input folder")
			}
			return nil
		},
		Build: func(p pipeline.Params, c Context) (*Invocation, error) {
			switch c.Structure {
			case StructureInvalid:
				return nil, fmt.Errorf("REORGANIZE: current folder cannot be reorganized")
			case StructureReady:
				// Already structured: only the output-folder rename is needed,
				// and not even that when working in place.
				if p.Bool("inplace", false) {
					return nil, nil
				}
				a := &argList{}
				a.opt("-i", p, "inputFolder").
					opt("-o", p, "outputFolder").
					opt("--log", p, "log").
					on("--mv", p.Bool("mv", false)).
					logging(p)
				return &Invocation{Tool: "no_reorganize.py", Args: a.args}, nil
			default:
				withSeg := p.Bool("with-segmentation", true)
				a := &argList{}
				a.opt("-i", p, "inputFolder").
					opt("-o", p, "outputFolder").
					opt("--log", p, "log").
					logging(p).
					on("--no-segmentation", !withSeg).
					on("--all-segmentation", withSeg && p.Bool("all-data-with-segmentation", true)).
					on("--inplace", p.Bool("inplace", false)).
					filters(p).
					opt("-j", p, "multiprocessing")
				return &Invocation{Tool: "reorganize_multiprocessing.py", Args: a.args}, nil
			}
		},
	}
}

func dcm2nii() Spec {
	return Spec{
		Name:     "DCM2NII",
		Tool:     "dcm2nii_multiprocessing.py",
		InputKey: "inputFolder",
		Output:   OutputRequired,
		Apply: func(p pipeline.Params) error {
			applyBatch(p)
			p.SetDefault("with-segmentation", true)
			p.SetDefault("all-data-with-segmentation", true)
			p.SetDefault("mask_regMatch", ".*")
			if !p.Has("inputFolder") {
				return errMissing("DCM2NII", "input folder")
			}
			return nil
		},
		Build: func(p pipeline.Params, _ Context) (*Invocation, error) {
			withSeg := p.Bool("with-segmentation", true)
			a := &argList{}
			a.opt("-i", p, "inputFolder").
				opt("-o", p, "outputFolder").
				opt("--log", p, "log").
				opt("-j", p, "multiprocessing").
				opt("-m", p, "mask_regMatch").
				logging(p).
				on("--no-segmentation", !withSeg).
				on("--all-segmentation", withSeg && p.Bool("all-data-with-segmentation", true)).
				filters(p)
			return &Invocation{Tool: "dcm2nii_multiprocessing.py", Args: a.args}, nil
		},
	}
}

func spatialResampling() Spec {
	return Spec{
		Name:     "SPATIAL_RESAMPLING",
		Tool:     "NiftiSpatialResampling_multiprocessing.py",
		InputKey: "inputFolder",
		Output:   OutputRequired,
		Apply: func(p pipeline.Params) error {
			applyBatch(p)
			p.SetDefault("with-segmentation", true)
			p.SetDefault("all-data-with-segmentation", true)
			p.SetDefault("use_c3d", false)
			p.SetDefault("voxel_size", int64(1))
			p.SetDefault("image_interpolation", "Linear")
			p.SetDefault("mask_interpolation", "NearestNeighbor")
			p.SetDefault("suffix_name", "111")
			if !p.Has("inputFolder") {
				return errMissing("SPATIAL_RESAMPLING", "input folder")
			}
			return nil
		},
		Build: func(p pipeline.Params, _ Context) (*Invocation, error) {
			withSeg := p.Bool("with-segmentation", true)
			a := &argList{}
			a.opt("-i", p, "inputFolder").
				opt("-o", p, "outputFolder").
				opt("--log", p, "log").
				opt("-j", p, "multiprocessing").
				opt("-I", p, "image_interpolation").
				opt("-M", p, "mask_interpolation").
				opt("-s", p, "voxel_size").
				opt("-e", p, "suffix_name").
				logging(p).
				on("--use_c3d", p.Bool("use_c3d", false)).
				on("--no-segmentation", !withSeg).
				on("--all-segmentation", withSeg && p.Bool("all-data-with-segmentation", true)).
				filters(p)
			return &Invocation{Tool: "NiftiSpatialResampling_multiprocessing.py", Args: a.args}, nil
		},
	}
}

func intensityResampling() Spec {
	return Spec{
		Name:     "INTENSITY_RESAMPLING",
		Tool:     "NiftiIntensityResampling_multiprocessing.py",
		InputKey: "inputFolder",
		Output:   OutputOptional,
		Apply: func(p pipeline.Params) error {
			applyBatch(p)
			p.SetDefault("image_filename", "img.nii.gz")
			p.SetDefault("mask_filename", "")
			p.SetDefault("resampled_image_filename", "img_r.nii.gz")
			p.SetDefault("suffix_name", "")
			p.SetDefault("method", "binning_number")
			p.SetDefault("n_bins", int64(256))
			p.SetDefault("bin_width", int64(25))
			p.SetDefault("min_scaling", int64(0))
			p.SetDefault("max_scaling", int64(1))
			p.SetDefault("lower_bound", int64(2))
			p.SetDefault("upper_bound", int64(98))
			if !p.Has("inputFolder") {
				return errMissing("INTENSITY_RESAMPLING", "input folder")
			}
			return nil
		},
		Build: func(p pipeline.Params, _ Context) (*Invocation, error) {
			a := &argList{}
			a.opt("-i", p, "inputFolder").
				opt("-o", p, "outputFolder").
				opt("--log", p, "log").
				opt("-j", p, "multiprocessing").
				opt("--img_name", p, "image_filename").
				opt("--msk_name", p, "mask_filename").
				opt("--resampled_img_name", p, "resampled_image_filename").
				opt("-e", p, "suffix_name").
				opt("--method", p, "method").
				opt("--n_bins", p, "n_bins").
				opt("--bin_width", p, "bin_width").
				opt("--scale_min", p, "min_scaling").
				opt("--scale_max", p, "max_scaling").
				opt("--lower_bound", p, "lower_bound").
				opt("--upper_bound", p, "upper_bound").
				logging(p).
				filters(p)
			return &Invocation{Tool: "NiftiIntensityResampling_multiprocessing.py", Args: a.args}, nil
		},
	}
}

func mergeMasks() Spec {
	return Spec{
		Name:     "MERGE_MASKS",
		Tool:     "NiftiMergeVolumes_multiprocessing.py",
		InputKey: "inputFolder",
		Output:   OutputOptional,
		Apply: func(p pipeline.Params) error {
			applyBatch(p)
			p.SetDefault("image_filename", "img.nii.gz")
			p.SetDefault("resampled_image_filename", "r_img.nii.gz")
			p.SetDefault("mask_filename", "")
			if !p.Has("inputFolder") {
				return errMissing("MERGE_MASKS", "input folder")
			}
			if p.Has("reg") == p.Has("add") {
				return fmt.Errorf("MERGE_MASKS: exactly one of the options 'reg' or 'add' must be used to determine the masks to merge")
			}
			if p.Has("add") {
				p.SetDefault("sub", "")
			}
			return nil
		},
		Build: func(p pipeline.Params, _ Context) (*Invocation, error) {
			a := &argList{}
			a.opt("-i", p, "inputFolder").
				opt("-o", p, "outputFolder").
				opt("--log", p, "log").
				opt("-j", p, "multiprocessing").
				opt("-m", p, "mask_filename")
			if p.Has("add") {
				a.opt("--add", p, "add").opt("--sub", p, "sub")
			}
			if p.Has("reg") {
				a.opt("--reg", p, "reg")
			}
			a.logging(p).filters(p)
			return &Invocation{Tool: "NiftiMergeVolumes_multiprocessing.py", Args: a.args}, nil
		},
	}
}

func maskThresholding() Spec {
	return Spec{
		Name:     "MASK_THRESHOLDING",
		Tool:     "NiftiMaskThresholding_multiprocessing.py",
		InputKey: "inputFolder",
		Output:   OutputOptional,
		Apply: func(p pipeline.Params) error {
			applyBatch(p)
			p.SetDefault("image_filename", "img.nii.gz")
			p.SetDefault("mask_filename", "msk.nii.gz")
			p.SetDefault("suffix_name", "mask_thresholding")
			p.SetDefault("min_threshold", math.SmallestNonzeroFloat64)
			p.SetDefault("max_threshold", math.MaxFloat64)
			if !p.Has("inputFolder") {
				return errMissing("MASK_THRESHOLDING", "input folder")
			}
			return nil
		},
		Build: func(p pipeline.Params, _ Context) (*Invocation, error) {
			a := &argList{}
			a.opt("-i", p, "inputFolder").
				opt("-o", p, "outputFolder").
				opt("--log", p, "log").
				opt("-j", p, "multiprocessing").
				opt("-M", p, "mask_filename").
				opt("-I", p, "image_filename").
				opt("--min_thr", p, "min_threshold").
				opt("--max_thr", p, "max_threshold").
				opt("-e", p, "suffix_name").
				logging(p).
				filters(p)
			return &Invocation{Tool: "NiftiMaskThresholding_multiprocessing.py", Args: a.args}, nil
		},
	}
}

func windowing() Spec {
	return Spec{
		Name:     "I-WINDOWING",
		Tool:     "NiftiWindowing_multiprocessing.py",
		InputKey: "inputFolder",
		Output:   OutputOptional,
		Apply: func(p pipeline.Params) error {
			applyBatch(p)
			p.SetDefault("image_filename", "img.nii.gz")
			p.SetDefault("windowed_image_filename", "img_w.nii.gz")
			p.SetDefault("window_name", "")
			p.SetDefault("suffix_name", "")
			p.SetDefault("window_level", int64(-5000))
			p.SetDefault("window_width", int64(-5000))
			if !p.Has("inputFolder") {
				return errMissing("I-WINDOWING", "input folder")
			}
			return nil
		},
		Build: func(p pipeline.Params, _ Context) (*Invocation, error) {
			a := &argList{}
			a.opt("-i", p, "inputFolder").
				opt("-o", p, "outputFolder").
				opt("--log", p, "log").
				opt("-j", p, "multiprocessing").
				opt("--img_name", p, "image_filename").
				opt("--windowed_img_name", p, "windowed_image_filename").
				opt("--WL", p, "window_level").
				opt("--WW", p, "window_width").
				opt("--preset", p, "window_name").
				opt("-e", p, "suffix_name").
				logging(p).
				filters(p)
			return &Invocation{Tool: "NiftiWindowing_multiprocessing.py", Args: a.args}, nil
		},
	}
}

func imageHarmonize() Spec {
	return Spec{
		Name:     "I-HARMONIZE",
		Tool:     "NiftiImageHarmonization_multiprocessing.py",
		InputKey: "inputFolder",
		Output:   OutputOptional,
		Apply: func(p pipeline.Params) error {
			applyBatch(p)
			p.SetDefault("image_filename", "img.nii.gz")
			p.SetDefault("mask_filename", "")
			p.SetDefault("reference_mask", "")
			p.SetDefault("harmonized_image_filename", "h_img.nii.gz")
			p.SetDefault("method", "histogram_matching")
			p.SetDefault("n_bins", int64(256))
			p.SetDefault("n_matchPoints", int64(10))
			p.SetDefault("suffix_name", "")
			if !p.Has("inputFolder") {
				return errMissing("I-HARMONIZE", "input folder")
			}
			if !p.Has("reference_image") {
				return fmt.Errorf("I-HARMONIZE requires a reference image to perform harmonization")
			}
			return nil
		},
		Build: func(p pipeline.Params, _ Context) (*Invocation, error) {
			a := &argList{}
			a.opt("-i", p, "inputFolder").
				opt("-o", p, "outputFolder").
				opt("--log", p, "log").
				opt("-j", p, "multiprocessing").
				opt("--img_name", p, "image_filename").
				opt("--msk_name", p, "mask_filename").
				opt("--ref_img", p, "reference_image").
				opt("--ref_msk", p, "reference_mask").
				opt("--harmonized_img_name", p, "harmonized_image_filename").
				opt("--method", p, "method").
				opt("--n_bins", p, "n_bins").
				opt("--n_matchPoints", p, "n_matchPoints").
				opt("-e", p, "suffix_name").
				logging(p).
				filters(p)
			return &Invocation{Tool: "NiftiImageHarmonization_multiprocessing.py", Args: a.args}, nil
		},
	}
}

func n4BiasFieldCorrection() Spec {
	return Spec{
		Name:     "N4-BIAS-FIELD-CORRECTION",
		Tool:     "NiftiN4BiasFieldCorrection_multiprocessing.py",
		InputKey: "inputFolder",
		Output:   OutputOptional,
		Apply: func(p pipeline.Params) error {
			applyBatch(p)
			p.SetDefault("image_filename", "img.nii.gz")
			p.SetDefault("mask_filename", "")
			p.SetDefault("corrected_image_filename", "img_n4biasCorr.nii.gz")
			p.SetDefault("bias_field_image_filename", "")
			p.SetDefault("suffix_name", "")
			if !p.Has("inputFolder") {
				return errMissing("N4-BIAS-FIELD-CORRECTION", "input folder")
			}
			return nil
		},
		Build: func(p pipeline.Params, _ Context) (*Invocation, error) {
			a := &argList{}
			a.opt("-i", p, "inputFolder").
				opt("-o", p, "outputFolder").
				opt("--log", p, "log").
				opt("-j", p, "multiprocessing").
				opt("--img_name", p, "image_filename").
				opt("--msk_name", p, "mask_filename").
				opt("--corrected_img_name", p, "corrected_image_filename").
				opt("--bias_field_name", p, "bias_field_image_filename").
				opt("-e", p, "suffix_name").
				logging(p).
				filters(p)
			return &Invocation{Tool: "NiftiN4BiasFieldCorrection_multiprocessing.py", Args: a.args}, nil
		},
	}
}

func radiomics() Spec {
	return Spec{
		Name:     "RADIOMICS",
		Tool:     "radiomics_multiprocessing.py",
		InputKey: "inputFolder",
		Output:   OutputHome,
		Apply: func(p pipeline.Params) error {
			applyBatch(p)
			p.SetDefault("save_at_the_end", false)
			p.SetDefault("stats_filename", "")
			p.SetDefault("image_filename", "img.nii.gz")
			p.SetDefault("mask_filename", "msk.nii.gz")
			p.SetDefault("radiomics_filename", "radiomics.xlsx")
			if !p.Has("inputFolder") {
				return errMissing("RADIOMICS", "input folder")
			}
			if !p.Has("configs") && !p.Has("pyradiomics_config") {
				return fmt.Errorf("RADIOMICS: neither \"configs\" nor \"pyradiomics_config\" is specified")
			}
			p.SetDefault("configs", "")
			p.SetDefault("pyradiomics_config", "")
			if p.Bool("save_at_the_end", false) && p.Int("multiprocessing", 1) > 1 {
				p["save_at_the_end"] = false
				log.Printf("[Engine] WARNING: with multiprocessing, radiomics results cannot be saved at the end; save_at_the_end was set to False")
			}
			return nil
		},
		Build: func(p pipeline.Params, _ Context) (*Invocation, error) {
			a := &argList{}
			a.opt("-i", p, "inputFolder").
				opt("-o", p, "outputFolder").
				opt("--log", p, "log").
				opt("-j", p, "multiprocessing").
				opt("-I", p, "image_filename").
				opt("-M", p, "mask_filename").
				opt("-R", p, "radiomics_filename").
				opt("-c", p, "configs").
				opt("-p", p, "pyradiomics_config").
				opt("--stats_filename", p, "stats_filename").
				logging(p).
				on("-x", p.Bool("save_at_the_end", false)).
				filters(p)
			return &Invocation{Tool: "radiomics_multiprocessing.py", Args: a.args}, nil
		},
	}
}

func segmentation() Spec {
	return Spec{
		Name:     "SEGMENTATION",
		Tool:     "segmentation_multiprocessing.py",
		InputKey: "inputFolder",
		Output:   OutputNone,
		Apply: func(p pipeline.Params) error {
			applyBatch(p)
			p.SetDefault("skip-segmented-data", false)
			p.SetDefault("method", "TotalSegmentator")
			p.SetDefault("segmentation-list", "")
			p.SetDefault("image_type", "nifti")
			switch p.String("image_type") {
			case "NIFTI", "Nifti", "nifti":
				p.SetDefault("image_filename", "")
			default:
				p.SetDefault("image_filename", "DCM")
			}
			p.SetDefault("job_scheduler", "SGE")
			if !p.Has("inputFolder") {
				return errMissing("SEGMENTATION", "input folder")
			}
			return nil
		},
		Build: func(p pipeline.Params, _ Context) (*Invocation, error) {
			a := &argList{}
			a.opt("-i", p, "inputFolder").
				opt("--log", p, "log").
				opt("-j", p, "multiprocessing").
				logging(p).
				on("--skip-segmented-data", p.Bool("skip-segmented-data", false)).
				filters(p).
				opt("-m", p, "method").
				opt("-f", p, "segmentation-list").
				opt("-I", p, "image_filename").
				opt("-t", p, "image_type").
				opt("--job_scheduler", p, "job_scheduler")
			return &Invocation{Tool: "segmentation_multiprocessing.py", Args: a.args}, nil
		},
	}
}

func featureNormalize() Spec {
	return Spec{
		Name:     "F-NORMALIZE",
		Tool:     "feature_normalization.py",
		InputKey: "inputFolder",
		Output:   OutputNone,
		Apply: func(p pipeline.Params) error {
			applyCommon(p)
			p.SetDefault("new_log_file", false)
			p.SetDefault("outputFolder", "")
			p.SetDefault("modelFolder", "")
			p.SetDefault("radiomics_filename", "radiomics.xlsx")
			p.SetDefault("normalized_radiomics_filename", "normalized_radiomics.xlsx")
			p.SetDefault("stats_filename", "")
			p.SetDefault("stratified", "True")
			p.SetDefault("method", "MinMax")
			p.SetDefault("mode", "Internal")
			if !p.Has("inputFolder") {
				return errMissing("F-NORMALIZE", "input folder")
			}
			return nil
		},
		Build: func(p pipeline.Params, _ Context) (*Invocation, error) {
			a := &argList{}
			a.opt("-i", p, "inputFolder").
				opt("--log", p, "log").
				opt("-o", p, "outputFolder").
				opt("-m", p, "modelFolder").
				opt("-R", p, "radiomics_filename").
				opt("-N", p, "normalized_radiomics_filename").
				opt("-S", p, "stats_filename").
				opt("-M", p, "method").
				opt("--stratified", p, "stratified").
				opt("--norm_dataset", p, "mode").
				logging(p)
			return &Invocation{Tool: "feature_normalization.py", Args: a.args}, nil
		},
	}
}

func featureHarmonize() Spec {
	return Spec{
		Name:     "F-HARMONIZE",
		Tool:     "feature_harmonization.py",
		InputKey: "inputFolder",
		Output:   OutputNone,
		Apply: func(p pipeline.Params) error {
			applyCommon(p)
			p.SetDefault("new_log_file", false)
			p.SetDefault("outputFolder", "")
			p.SetDefault("modelFolder", "")
			p.SetDefault("radiomics_filename", "radiomics.xlsx")
			p.SetDefault("batch_filename", "radiomics.xlsx")
			p.SetDefault("harmonized_radiomics_filename", "harmonized_radiomics.xlsx")
			p.SetDefault("radiomics_from_model_filename", "")
			p.SetDefault("batch_from_model_filename", "")
			p.SetDefault("estimates_filename", "")
			p.SetDefault("ref_batch", "None")
			p.SetDefault("mode", "internal")
			p.SetDefault("covars", "")
			if !p.Has("inputFolder") {
				return errMissing("F-HARMONIZE", "input folder")
			}
			return nil
		},
		Build: func(p pipeline.Params, _ Context) (*Invocation, error) {
			a := &argList{}
			a.opt("-i", p, "inputFolder").
				opt("--log", p, "log").
				opt("-o", p, "outputFolder").
				opt("-m", p, "modelFolder").
				opt("-r", p, "radiomics_filename").
				opt("-b", p, "batch_filename").
				opt("-R", p, "harmonized_radiomics_filename").
				opt("-E", p, "estimates_filename").
				opt("--radiomics_from_model", p, "radiomics_from_model_filename").
				opt("--batch_from_model", p, "batch_from_model_filename").
				opt("--ref_batch", p, "ref_batch").
				opt("-M", p, "mode").
				opt("--covars", p, "covars").
				logging(p)
			return &Invocation{Tool: "feature_harmonization.py", Args: a.args}, nil
		},
	}
}

func predict() Spec {
	return Spec{
		Name:     "PREDICT",
		Tool:     "predict.py",
		InputKey: "inputFolder",
		Output:   OutputNone,
		Apply: func(p pipeline.Params) error {
			applyCommon(p)
			p.SetDefault("new_log_file", false)
			p.SetDefault("outputFolder", "")
			p.SetDefault("modelFolder", "")
			p.SetDefault("radiomics_filename", "radiomics.xlsx")
			p.SetDefault("predict_filename", "predict.xlsx")
			p.SetDefault("model_filename", "model.pkl")
			if !p.Has("inputFolder") {
				return errMissing("PREDICT", "input folder")
			}
			return nil
		},
		Build: func(p pipeline.Params, _ Context) (*Invocation, error) {
			a := &argList{}
			a.opt("-i", p, "inputFolder").
				opt("--log", p, "log").
				opt("-o", p, "outputFolder").
				opt("-m", p, "modelFolder").
				opt("-r", p, "radiomics_filename").
				opt("-p", p, "predict_filename").
				opt("-M", p, "model_filename").
				logging(p)
			return &Invocation{Tool: "predict.py", Args: a.args}, nil
		},
	}
}

func deleteFolder() Spec {
	return Spec{
		Name:     "DELETE",
		Tool:     "delete_folder.py",
		InputKey: "folder",
		Output:   OutputNone,
		Apply: func(p pipeline.Params) error {
			applyCommon(p)
			if !p.Has("folder") {
				return errMissing("DELETE", "folder to delete")
			}
			return nil
		},
		Build: func(p pipeline.Params, _ Context) (*Invocation, error) {
			a := &argList{}
			a.opt("-f", p, "folder").
				opt("--log", p, "log").
				on("-v", p.Bool("verbose", false))
			return &Invocation{Tool: "delete_folder.py", Args: a.args}, nil
		},
	}
}

func copyFolder() Spec {
	return Spec{
		Name:     "COPY",
		Tool:     "copy_folder_contents.py",
		InputKey: "inputFolder",
		Output:   OutputNone,
		Apply: func(p pipeline.Params) error {
			applyCommon(p)
			p.SetDefault("targetFolder", "")
			if !p.Has("inputFolder") {
				return errMissing("COPY", "input folder")
			}
			return nil
		},
		Build: func(p pipeline.Params, _ Context) (*Invocation, error) {
			a := &argList{}
			a.opt("-i", p, "inputFolder").
				opt("--log", p, "log").
				opt("-o", p, "targetFolder").
				on("-v", p.Bool("verbose", false))
			return &Invocation{Tool: "copy_folder_contents.py", Args: a.args}, nil
		},
	}
}
